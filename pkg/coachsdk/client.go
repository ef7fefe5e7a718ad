// Package coachsdk holds the wire types of the coaching service API and a
// small Go client for them. The server's HTTP handlers and the client share
// these types so the two cannot drift apart.
package coachsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// APIError is a decoded error envelope plus the HTTP status it arrived with.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Description)
}

// Client talks to a coachd instance. The session cookie set by sign-in is
// kept in the client's cookie jar, so one Client represents one signed-in
// user.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

// GoogleCallback completes a Google sign-in, optionally redeeming an
// invitation token, and stores the session cookie for later calls.
func (c *Client) GoogleCallback(ctx context.Context, req GoogleCallbackRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/google-callback", req, &out)
	return out, err
}

// Join redeems an invitation token for the signed-in user.
func (c *Client) Join(ctx context.Context, token string) (MeResponse, error) {
	var out MeResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/join", JoinRequest{InvitationToken: token}, &out)
	return out, err
}

// Me returns the signed-in user's profile and roles.
func (c *Client) Me(ctx context.Context) (MeResponse, error) {
	var out MeResponse
	err := c.do(ctx, http.MethodGet, "/v1/auth/me", nil, &out)
	return out, err
}

// Logout destroys the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
}

// VerifyInvitation previews who an invitation token belongs to. Public; no
// session required.
func (c *Client) VerifyInvitation(ctx context.Context, token string) (InvitationDisplay, error) {
	var out InvitationDisplay
	err := c.do(ctx, http.MethodGet, "/v1/invitations/"+token, nil, &out)
	return out, err
}

// IssueInvitation mints or reuses the signed-in coach's invitation link.
func (c *Client) IssueInvitation(ctx context.Context, expiresInDays int) (IssueInvitationResponse, error) {
	var out IssueInvitationResponse
	err := c.do(ctx, http.MethodPost, "/v1/coach/invitations",
		IssueInvitationRequest{ExpiresInDays: expiresInDays}, &out)
	return out, err
}

// ListClients returns the signed-in coach's roster.
func (c *Client) ListClients(ctx context.Context) ([]ClientSummary, error) {
	var out []ClientSummary
	err := c.do(ctx, http.MethodGet, "/v1/coach/clients", nil, &out)
	return out, err
}

// GetClient returns one linked client with their latest program.
func (c *Client) GetClient(ctx context.Context, clientID string) (ClientDetail, error) {
	var out ClientDetail
	err := c.do(ctx, http.MethodGet, "/v1/coach/clients/"+clientID, nil, &out)
	return out, err
}

// CreateCoach provisions a coach account. Admin only.
func (c *Client) CreateCoach(ctx context.Context, req CreateCoachRequest) (CreateCoachResponse, error) {
	var out CreateCoachResponse
	err := c.do(ctx, http.MethodPost, "/v1/admin/coaches", req, &out)
	return out, err
}

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, http.MethodGet, "/v1/admin/users", nil, &out)
	return out, err
}

// CreateProgram assigns a new program to a linked client.
func (c *Client) CreateProgram(ctx context.Context, req CreateProgramRequest) (Program, error) {
	var out Program
	err := c.do(ctx, http.MethodPost, "/v1/coach/programs", req, &out)
	return out, err
}

// ListPrograms returns the signed-in coach's programs.
func (c *Client) ListPrograms(ctx context.Context) ([]Program, error) {
	var out []Program
	err := c.do(ctx, http.MethodGet, "/v1/coach/programs", nil, &out)
	return out, err
}

// GetProgram fetches one of the coach's programs.
func (c *Client) GetProgram(ctx context.Context, programID string) (Program, error) {
	var out Program
	err := c.do(ctx, http.MethodGet, "/v1/coach/programs/"+programID, nil, &out)
	return out, err
}

// DeleteProgram removes a program and its workouts.
func (c *Client) DeleteProgram(ctx context.Context, programID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/coach/programs/"+programID, nil, nil)
}

// AddWorkout appends a workout to a program.
func (c *Client) AddWorkout(ctx context.Context, programID string, req AddWorkoutRequest) (Workout, error) {
	var out Workout
	err := c.do(ctx, http.MethodPost, "/v1/coach/programs/"+programID+"/workouts", req, &out)
	return out, err
}

// ListWorkouts returns a program's workouts in order.
func (c *Client) ListWorkouts(ctx context.Context, programID string) ([]Workout, error) {
	var out []Workout
	err := c.do(ctx, http.MethodGet, "/v1/coach/programs/"+programID+"/workouts", nil, &out)
	return out, err
}

// CreateExercise adds an exercise to the coach's library.
func (c *Client) CreateExercise(ctx context.Context, req CreateExerciseRequest) (Exercise, error) {
	var out Exercise
	err := c.do(ctx, http.MethodPost, "/v1/coach/exercises", req, &out)
	return out, err
}

// ListExercises returns the coach's exercise library.
func (c *Client) ListExercises(ctx context.Context) ([]Exercise, error) {
	var out []Exercise
	err := c.do(ctx, http.MethodGet, "/v1/coach/exercises", nil, &out)
	return out, err
}

// DeleteExercise removes an exercise from the library.
func (c *Client) DeleteExercise(ctx context.Context, exerciseID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/coach/exercises/"+exerciseID, nil, nil)
}

// Livez reports whether the service process is up.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, &out)
	return out, err
}

// do performs one JSON round trip. A nil body sends no payload; a nil out
// discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
		apiErr.Code = "server_error"
		apiErr.Description = http.StatusText(resp.StatusCode)
		return apiErr
	}

	apiErr.Code = envelope.Error
	apiErr.Description = envelope.ErrorDescription
	return apiErr
}
