package domain

import "context"

// SessionTokenKey is the fixed name the bearer token is stored under
const SessionTokenKey = "token"

// Viewer is the authenticated user operating the client
type Viewer struct {
	ID       string
	Avatar   string
	FullName string
	Email    string
}

// Credentials is the email/password login form
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Registration is the sign-up form
type Registration struct {
	FullName string `validate:"notblank"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Session holds the bearer token of the current user.
// Token returns an empty string and no error when nobody is logged in.
type Session interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthRepository defines the contract of the backend auth endpoints
type AuthRepository interface {
	// Viewer returns the identity bound to the current session token.
	Viewer(ctx context.Context) (Viewer, error)

	// Login exchanges credentials for an access token.
	Login(ctx context.Context, c Credentials) (string, error)

	// LoginWithGoogle exchanges a Google credential for an access token.
	LoginWithGoogle(ctx context.Context, credential string) (string, error)

	Register(ctx context.Context, r Registration) error
}

// ViewerProvider resolves the viewer id used to evaluate like state
type ViewerProvider interface {
	ViewerID(ctx context.Context) (string, error)
}

// SessionObserver is told when the logged-in user changes
type SessionObserver interface {
	SessionChanged()
}

type AccountUsecase interface {
	Login(ctx context.Context, c Credentials) error
	LoginWithGoogle(ctx context.Context, credential string) error
	Register(ctx context.Context, r Registration) error
	Logout(ctx context.Context) error
}
