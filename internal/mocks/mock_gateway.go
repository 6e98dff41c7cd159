package mocks

import (
	"context"

	"github.com/vcm-medical/vcmclient/domain"
)

// MockGateway implements domain.Gateway for testing
type MockGateway struct {
	LoginFunc           func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RegisterFunc        func(ctx context.Context, req domain.RegisterRequest) error
	VerifyOTPFunc       func(ctx context.Context, email, code string) (*domain.AuthResult, error)
	ResendOTPFunc       func(ctx context.Context, email string) error
	CompleteProfileFunc func(ctx context.Context, req domain.CompleteProfileRequest) (*domain.AuthResult, error)
	UpdateProfileFunc   func(ctx context.Context, fields map[string]any) (*domain.User, error)
	CurrentUserFunc     func(ctx context.Context) (*domain.User, error)
	LogoutFunc          func(ctx context.Context) error
	CountriesFunc       func(ctx context.Context) ([]domain.Country, error)
	StatesFunc          func(ctx context.Context, countryID int) ([]domain.State, error)
	CitiesFunc          func(ctx context.Context, countryID, stateID int) ([]domain.City, error)
}

// NewMockGateway creates a new MockGateway with default behaviors
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Login authenticates with email and password
func (m *MockGateway) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.NewAPIError(401, "Invalid email or password")
}

// Register submits a registration
func (m *MockGateway) Register(ctx context.Context, req domain.RegisterRequest) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil
}

// VerifyOTP confirms the emailed code
func (m *MockGateway) VerifyOTP(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code)
	}
	return nil, domain.NewAPIError(400, "Invalid OTP code")
}

// ResendOTP requests a fresh code
func (m *MockGateway) ResendOTP(ctx context.Context, email string) error {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email)
	}
	return nil
}

// CompleteProfile submits the profile completion form
func (m *MockGateway) CompleteProfile(ctx context.Context, req domain.CompleteProfileRequest) (*domain.AuthResult, error) {
	if m.CompleteProfileFunc != nil {
		return m.CompleteProfileFunc(ctx, req)
	}
	return &domain.AuthResult{User: &domain.User{ProfileComplete: true}}, nil
}

// UpdateProfile applies a partial profile update
func (m *MockGateway) UpdateProfile(ctx context.Context, fields map[string]any) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, fields)
	}
	return &domain.User{}, nil
}

// CurrentUser fetches the authenticated user record
func (m *MockGateway) CurrentUser(ctx context.Context) (*domain.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return &domain.User{}, nil
}

// Logout notifies the backend
func (m *MockGateway) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

// Countries fetches the country list
func (m *MockGateway) Countries(ctx context.Context) ([]domain.Country, error) {
	if m.CountriesFunc != nil {
		return m.CountriesFunc(ctx)
	}
	return nil, nil
}

// States fetches states for a country
func (m *MockGateway) States(ctx context.Context, countryID int) ([]domain.State, error) {
	if m.StatesFunc != nil {
		return m.StatesFunc(ctx, countryID)
	}
	return nil, nil
}

// Cities fetches cities for a country and state
func (m *MockGateway) Cities(ctx context.Context, countryID, stateID int) ([]domain.City, error) {
	if m.CitiesFunc != nil {
		return m.CitiesFunc(ctx, countryID, stateID)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.Gateway = (*MockGateway)(nil)
