package domain

import "testing"

func TestUserTypeLabel(t *testing.T) {
	tests := []struct {
		name     string
		userType UserType
		expected string
	}{
		{"patient", UserTypePatient, "Patient"},
		{"doctor", UserTypeDoctor, "Doctor"},
		{"sales channel", UserTypeSalesChannel, "Sales Channel"},
		{"operator", UserTypeOperator, "Operator"},
		{"super admin", UserTypeSuperAdmin, "Super Admin"},
		{"unknown value", UserType(99), "Unknown"},
		{"negative value", UserType(-1), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.userType.Label(); got != tt.expected {
				t.Errorf("expected label %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSessionIsAuthenticated(t *testing.T) {
	user := &User{Email: "doc@example.com"}

	tests := []struct {
		name     string
		session  *Session
		expected bool
	}{
		{"nil session", nil, false},
		{"empty session", &Session{}, false},
		{"user without token", &Session{User: user}, false},
		{"token without user", &Session{Token: "abc"}, false},
		{"user and token", &Session{User: user, Token: "abc"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.IsAuthenticated(); got != tt.expected {
				t.Errorf("expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestUserFullName(t *testing.T) {
	u := &User{Email: "doc@example.com", FirstName: "Ada", LastName: "Wong"}
	if got := u.FullName(); got != "Ada Wong" {
		t.Errorf("expected full name, got %q", got)
	}

	incomplete := &User{Email: "doc@example.com", FirstName: "Ada"}
	if got := incomplete.FullName(); got != "doc@example.com" {
		t.Errorf("expected email fallback, got %q", got)
	}
}
