// Package identity verifies sign-ins against an external identity provider.
// The rest of the system trusts the verified profile unconditionally; who the
// provider is and how verification happens stays behind the Verifier
// interface so services can be tested with fakes.
package identity

import "context"

// Profile is the verified identity the provider vouches for.
type Profile struct {
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

// Verifier exchanges an opaque authorization credential for a verified
// profile.
type Verifier interface {
	// Exchange trades an authorization code for a verified user profile.
	Exchange(ctx context.Context, code, redirectURI string) (Profile, error)
}
