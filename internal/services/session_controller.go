package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/vcm-medical/vcmclient/domain"
	"github.com/vcm-medical/vcmclient/internal/config"
)

// SessionSnapshot is the read-only view the presentation layer renders
// from. Fields are copies; mutating them has no effect on the session.
type SessionSnapshot struct {
	State           domain.AuthState
	User            *domain.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	LastError       string
	PendingEmail    string
}

// SessionController owns the authentication lifecycle: it is the only
// writer of the session and of the session store. All operations are
// safe for concurrent use, but a second mutating operation started while
// one is in flight is rejected with ErrOperationInFlight rather than
// queued, so duplicate form submissions cannot interleave writes.
type SessionController struct {
	gateway   domain.Gateway
	store     domain.SessionStore
	tokens    *TokenHolder
	inspector domain.TokenInspector
	events    domain.EventSink
	logger    *zap.Logger
	flow      string

	mu           sync.Mutex
	state        domain.AuthState
	user         *domain.User
	token        string
	isLoading    bool
	lastError    string
	pendingEmail string

	// epoch increments on every teardown so a failing operation that
	// raced a forced logout cannot revert the state it finds.
	epoch      uint64
	beginEpoch uint64
}

// NewSessionController creates a controller in the Anonymous state.
// Call Restore before rendering anything that depends on auth state.
func NewSessionController(
	gateway domain.Gateway,
	store domain.SessionStore,
	tokens *TokenHolder,
	inspector domain.TokenInspector,
	events domain.EventSink,
	logger *zap.Logger,
	flow string,
) *SessionController {
	return &SessionController{
		gateway:   gateway,
		store:     store,
		tokens:    tokens,
		inspector: inspector,
		events:    events,
		logger:    logger,
		flow:      flow,
		state:     domain.StateAnonymous,
	}
}

// Snapshot returns the current session view.
func (c *SessionController) Snapshot() SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SessionSnapshot{
		State:           c.state,
		User:            c.user,
		Token:           c.token,
		IsAuthenticated: c.user != nil && c.token != "",
		IsLoading:       c.isLoading,
		LastError:       c.lastError,
		PendingEmail:    c.pendingEmail,
	}
}

// ClearError clears the last surfaced error, typically when the user
// edits the offending form.
func (c *SessionController) ClearError() {
	c.mu.Lock()
	c.lastError = ""
	c.mu.Unlock()
}

// begin gates a mutating operation and moves to the transient state.
// The mutex is NOT held across network calls; begin/apply bracket them.
func (c *SessionController) begin(transient domain.AuthState, allowed ...domain.AuthState) (domain.AuthState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isLoading {
		return "", domain.ErrOperationInFlight
	}
	if len(allowed) > 0 {
		ok := false
		for _, s := range allowed {
			if c.state == s {
				ok = true
				break
			}
		}
		if !ok {
			return "", domain.ErrInvalidTransition
		}
	}

	prev := c.state
	c.isLoading = true
	c.lastError = ""
	c.beginEpoch = c.epoch
	if transient != "" {
		c.state = transient
	}
	return prev, nil
}

// fail reverts to the given state and surfaces the error message. If a
// forced logout happened while the operation was in flight, the
// Anonymous state it installed wins.
func (c *SessionController) fail(state domain.AuthState, err error) {
	c.mu.Lock()
	c.isLoading = false
	if c.epoch == c.beginEpoch {
		c.state = state
	}
	c.lastError = err.Error()
	c.mu.Unlock()
}

// adopt installs an authenticated session and writes it through to the
// store. The resulting state depends on profile completeness.
func (c *SessionController) adopt(ctx context.Context, user *domain.User, token string) error {
	session := &domain.Session{User: user, Token: token}
	if err := c.store.Save(ctx, session); err != nil {
		c.logger.Warn("failed to persist session", zap.Error(err))
	}

	c.mu.Lock()
	c.isLoading = false
	c.user = user
	c.token = token
	c.pendingEmail = ""
	if user.ProfileComplete {
		c.state = domain.StateAuthenticated
	} else {
		c.state = domain.StateVerifiedIncompleteProfile
	}
	c.mu.Unlock()

	c.tokens.set(token)
	return nil
}

func (c *SessionController) publish(event domain.AuthEvent) {
	if c.events != nil {
		c.events.Publish(event)
	}
}

// Restore loads the persisted session at startup. A missing record, a
// partial record (user without token or vice versa), or an expired JWT
// all land in Anonymous; the corrupt cases are discarded silently as
// expected recoverable conditions, not faults.
func (c *SessionController) Restore(ctx context.Context) error {
	session, err := c.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return nil
	case errors.Is(err, domain.ErrSessionCorrupt):
		c.logger.Debug("discarding corrupt session record")
		return c.store.Clear(ctx)
	case err != nil:
		return err
	}

	if !session.IsAuthenticated() {
		// Partial record: only one of user/token present.
		c.logger.Debug("discarding partial session record")
		return c.store.Clear(ctx)
	}

	if c.inspector != nil && c.inspector.Expired(session.Token) {
		c.logger.Debug("discarding expired session", zap.String("email", session.User.Email))
		return c.store.Clear(ctx)
	}

	c.mu.Lock()
	c.user = session.User
	c.token = session.Token
	if session.User.ProfileComplete {
		c.state = domain.StateAuthenticated
	} else {
		c.state = domain.StateVerifiedIncompleteProfile
	}
	c.mu.Unlock()

	c.tokens.set(session.Token)
	c.publish(domain.NewAuthEvent(domain.SessionRestoredEvent, session.User.Email))
	return nil
}

// Login authenticates with email/password. On failure the session
// reverts to Anonymous with no partial credentials retained.
func (c *SessionController) Login(ctx context.Context, email, password string) error {
	if _, err := c.begin(domain.StateAuthenticating, domain.StateAnonymous); err != nil {
		return err
	}

	result, err := c.gateway.Login(ctx, email, password)
	if err != nil {
		c.fail(domain.StateAnonymous, err)
		c.publish(domain.NewAuthEvent(domain.UserLoginFailureEvent, email).WithError(err))
		return err
	}

	if err := c.adopt(ctx, result.User, result.Token); err != nil {
		return err
	}
	c.publish(domain.NewAuthEvent(domain.UserLoginEvent, email))
	return nil
}

// Register submits a new registration. No session is established; on
// success the controller awaits OTP verification for the email.
func (c *SessionController) Register(ctx context.Context, req domain.RegisterRequest) error {
	if _, err := c.begin(domain.StateRegistering, domain.StateAnonymous); err != nil {
		return err
	}

	if err := c.gateway.Register(ctx, req); err != nil {
		c.fail(domain.StateAnonymous, err)
		return err
	}

	c.mu.Lock()
	c.isLoading = false
	c.state = domain.StateAwaitingVerification
	c.pendingEmail = req.Email
	c.mu.Unlock()

	c.publish(domain.NewAuthEvent(domain.UserRegisteredEvent, req.Email))
	return nil
}

// VerifyOTP confirms the emailed code and establishes the session. On
// failure the controller stays in AwaitingVerification. Also callable
// from Anonymous so a restarted process can finish a pending
// verification.
func (c *SessionController) VerifyOTP(ctx context.Context, email, code string) error {
	prev, err := c.begin("", domain.StateAwaitingVerification, domain.StateAnonymous)
	if err != nil {
		return err
	}

	result, err := c.gateway.VerifyOTP(ctx, email, code)
	if err != nil {
		c.fail(prev, err)
		c.publish(domain.NewAuthEvent(domain.OTPFailureEvent, email).WithError(err))
		return err
	}

	if err := c.adopt(ctx, result.User, result.Token); err != nil {
		return err
	}
	c.publish(domain.NewAuthEvent(domain.OTPVerifiedEvent, email))
	return nil
}

// ResendOTP requests a fresh code for the pending email (or an explicit
// one after a process restart).
func (c *SessionController) ResendOTP(ctx context.Context, email string) error {
	prev, err := c.begin("", domain.StateAwaitingVerification, domain.StateAnonymous)
	if err != nil {
		return err
	}

	if email == "" {
		c.mu.Lock()
		email = c.pendingEmail
		c.mu.Unlock()
	}

	if err := c.gateway.ResendOTP(ctx, email); err != nil {
		c.fail(prev, err)
		return err
	}

	c.mu.Lock()
	c.isLoading = false
	c.mu.Unlock()
	return nil
}

// CompleteProfile fills in the demographic/address fields. Under the
// default otp-first flow it requires an established (incomplete)
// session; under profile-first it is also the step that yields the
// token, so it is callable while still awaiting verification.
func (c *SessionController) CompleteProfile(ctx context.Context, req domain.CompleteProfileRequest) error {
	allowed := []domain.AuthState{domain.StateVerifiedIncompleteProfile}
	if c.flow == config.FlowProfileFirst {
		allowed = append(allowed, domain.StateAwaitingVerification)
	}

	prev, err := c.begin("", allowed...)
	if err != nil {
		return err
	}

	result, err := c.gateway.CompleteProfile(ctx, req)
	if err != nil {
		c.fail(prev, err)
		return err
	}

	token := result.Token
	if token == "" {
		c.mu.Lock()
		token = c.token
		c.mu.Unlock()
	}
	if token == "" {
		// Forced logout raced this operation; its result is stale.
		c.fail(domain.StateAnonymous, domain.ErrSessionExpired)
		return domain.ErrSessionExpired
	}

	if err := c.adopt(ctx, result.User, token); err != nil {
		return err
	}
	c.publish(domain.NewAuthEvent(domain.ProfileCompletedEvent, result.User.Email))
	return nil
}

// UpdateProfile applies a partial profile update to an authenticated
// session.
func (c *SessionController) UpdateProfile(ctx context.Context, fields map[string]any) error {
	prev, err := c.begin("", domain.StateAuthenticated)
	if err != nil {
		return err
	}

	user, err := c.gateway.UpdateProfile(ctx, fields)
	if err != nil {
		c.fail(prev, err)
		return err
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		c.fail(domain.StateAnonymous, domain.ErrSessionExpired)
		return domain.ErrSessionExpired
	}
	return c.adopt(ctx, user, token)
}

// Refresh re-syncs the user record from the backend.
func (c *SessionController) Refresh(ctx context.Context) error {
	prev, err := c.begin("", domain.StateAuthenticated, domain.StateVerifiedIncompleteProfile)
	if err != nil {
		return err
	}

	user, err := c.gateway.CurrentUser(ctx)
	if err != nil {
		c.fail(prev, err)
		return err
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		c.fail(domain.StateAnonymous, domain.ErrSessionExpired)
		return domain.ErrSessionExpired
	}
	return c.adopt(ctx, user, token)
}

// Logout tears down the session from any state. It always succeeds
// locally and is idempotent; the backend notification is best-effort.
func (c *SessionController) Logout(ctx context.Context) error {
	c.mu.Lock()
	hadToken := c.token != ""
	email := ""
	if c.user != nil {
		email = c.user.Email
	}
	c.mu.Unlock()

	if hadToken {
		if err := c.gateway.Logout(ctx); err != nil {
			c.logger.Debug("backend logout notification failed", zap.Error(err))
		}
	}

	c.teardown(ctx)
	if hadToken {
		c.publish(domain.NewAuthEvent(domain.UserLogoutEvent, email))
	}
	return nil
}

// ForceLogout is the authorization-failure path: the gateway saw a 401
// on a token-bearing call, so the stored credential is dead. No network
// round-trip happens here, which keeps the teardown from looping.
func (c *SessionController) ForceLogout(ctx context.Context) {
	c.mu.Lock()
	email := ""
	if c.user != nil {
		email = c.user.Email
	}
	c.mu.Unlock()

	c.teardown(ctx)
	c.publish(domain.NewAuthEvent(domain.SessionExpiredEvent, email).WithError(domain.ErrSessionExpired))
}

func (c *SessionController) teardown(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("failed to clear session store", zap.Error(err))
	}

	c.mu.Lock()
	c.user = nil
	c.token = ""
	c.pendingEmail = ""
	c.state = domain.StateAnonymous
	c.epoch++
	c.mu.Unlock()

	c.tokens.set("")
}
