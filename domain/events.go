package domain

import "time"

// AuthEventType identifies a session lifecycle event.
type AuthEventType string

const (
	UserRegisteredEvent   AuthEventType = "USER_REGISTERED"
	OTPVerifiedEvent      AuthEventType = "OTP_VERIFIED"
	OTPFailureEvent       AuthEventType = "OTP_VERIFICATION_FAILED"
	UserLoginEvent        AuthEventType = "USER_LOGIN"
	UserLoginFailureEvent AuthEventType = "USER_LOGIN_FAILED"
	ProfileCompletedEvent AuthEventType = "PROFILE_COMPLETED"
	UserLogoutEvent       AuthEventType = "USER_LOGOUT"
	SessionExpiredEvent   AuthEventType = "SESSION_EXPIRED"
	SessionRestoredEvent  AuthEventType = "SESSION_RESTORED"
)

// AuthEvent is a session lifecycle event published by the controller.
// The composing application subscribes to translate these into UI
// actions (the expired event is how redirect-to-login happens without
// the gateway knowing about routing).
type AuthEvent struct {
	Type      AuthEventType
	Email     string
	Timestamp time.Time
	ErrorMsg  string
	Success   bool
}

// EventSink receives session lifecycle events. Implementations must not
// call back into the controller synchronously.
type EventSink interface {
	Publish(event AuthEvent)
}

// NewAuthEvent creates an event with common fields populated.
func NewAuthEvent(eventType AuthEventType, email string) AuthEvent {
	return AuthEvent{
		Type:      eventType,
		Email:     email,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError marks the event failed and records the message.
func (e AuthEvent) WithError(err error) AuthEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}
