package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultGoogleTokenURL = "https://oauth2.googleapis.com/token"
	defaultGoogleJWKSURL  = "https://www.googleapis.com/oauth2/v3/certs"
)

// GoogleConfig configures the Google sign-in verifier. TokenURL and JWKSURL
// are overridable so tests can point at stubs.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string

	TokenURL string
	JWKSURL  string
}

// GoogleVerifier exchanges a Google OAuth authorization code for an ID token
// and validates the token's signature against Google's published JWKS before
// trusting any of its claims.
type GoogleVerifier struct {
	cfg    GoogleConfig
	jwks   *keyfunc.JWKS
	client *http.Client
}

// NewGoogleVerifier constructs a verifier and starts the background JWKS
// refresh. Call Close to stop it.
func NewGoogleVerifier(cfg GoogleConfig) (*GoogleVerifier, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("identity: google client id is required")
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultGoogleTokenURL
	}
	if cfg.JWKSURL == "" {
		cfg.JWKSURL = defaultGoogleJWKSURL
	}

	jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("identity: failed to fetch google jwks: %w", err)
	}

	return &GoogleVerifier{
		cfg:    cfg,
		jwks:   jwks,
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Close stops the background JWKS refresh.
func (v *GoogleVerifier) Close() {
	v.jwks.EndBackground()
}

type googleTokenResponse struct {
	IDToken string `json:"id_token"`
}

type googleIDClaims struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	jwt.RegisteredClaims
}

// Exchange trades the authorization code for an ID token at Google's token
// endpoint, verifies the token, and returns the profile it vouches for.
func (v *GoogleVerifier) Exchange(ctx context.Context, code, redirectURI string) (Profile, error) {
	idToken, err := v.exchangeCode(ctx, code, redirectURI)
	if err != nil {
		return Profile{}, err
	}
	return v.verifyIDToken(idToken)
}

func (v *GoogleVerifier) exchangeCode(ctx context.Context, code, redirectURI string) (string, error) {
	form := url.Values{
		"client_id":     {v.cfg.ClientID},
		"client_secret": {v.cfg.ClientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {redirectURI},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("identity: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity: token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("identity: read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity: token exchange returned status %d", resp.StatusCode)
	}

	var tokenResp googleTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("identity: parse token response: %w", err)
	}
	if tokenResp.IDToken == "" {
		return "", fmt.Errorf("identity: token response missing id_token")
	}

	return tokenResp.IDToken, nil
}

func (v *GoogleVerifier) verifyIDToken(idToken string) (Profile, error) {
	var claims googleIDClaims
	_, err := jwt.ParseWithClaims(idToken, &claims, v.jwks.Keyfunc,
		jwt.WithAudience(v.cfg.ClientID),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
	)
	if err != nil {
		return Profile{}, fmt.Errorf("identity: id token verification failed: %w", err)
	}

	if claims.Email == "" {
		return Profile{}, fmt.Errorf("identity: id token carries no email")
	}

	first, last := claims.GivenName, claims.FamilyName
	if first == "" && last == "" {
		first, last = splitDisplayName(claims.Name)
	}

	return Profile{
		Email:     claims.Email,
		FirstName: first,
		LastName:  last,
		Picture:   claims.Picture,
	}, nil
}

// splitDisplayName falls back to splitting a single display name into parts
// when the provider sends no given/family names.
func splitDisplayName(name string) (first, last string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}
