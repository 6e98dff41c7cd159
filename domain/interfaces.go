package domain

import "context"

// Gateway is the single component that issues HTTP calls to the backend.
// Every operation maps 1:1 to a REST endpoint under /api/v1.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) error
	VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error)
	ResendOTP(ctx context.Context, email string) error
	// CompleteProfile returns the updated user. Backends running the
	// profile-first flow also return a token here; it is empty otherwise.
	CompleteProfile(ctx context.Context, req CompleteProfileRequest) (*AuthResult, error)
	UpdateProfile(ctx context.Context, fields map[string]any) (*User, error)
	CurrentUser(ctx context.Context) (*User, error)
	Logout(ctx context.Context) error

	Countries(ctx context.Context) ([]Country, error)
	States(ctx context.Context, countryID int) ([]State, error)
	Cities(ctx context.Context, countryID, stateID int) ([]City, error)
}

// SessionStore persists the session record under a fixed namespace.
// The session controller is the only writer; other components read
// derived views through TokenSource.
type SessionStore interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Clear(ctx context.Context) error
}

// TokenSource is the read-only view of the current credential that the
// gateway uses to attach Authorization headers.
type TokenSource interface {
	Token() string
}

// TokenInspector probes a stored credential without verifying it.
// The client never holds the signing secret, so expiry is the only
// thing it can (and does) check.
type TokenInspector interface {
	// Expired reports whether the token carries an exp claim in the
	// past. Opaque (non-JWT) tokens are never reported expired.
	Expired(token string) bool
}
