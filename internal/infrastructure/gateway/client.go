package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vcm-medical/vcmclient/domain"
)

// Client implements domain.Gateway over the platform REST API. It is the
// only component that performs network I/O; it never mutates session
// state itself.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         domain.TokenSource
	logger         *zap.Logger
	onUnauthorized func()
}

// NewClient creates the gateway. onUnauthorized is invoked at most once
// per failed call, and only when the failing request actually carried a
// bearer token — a 401 on a token-less call (a bad login) is a local
// form error, not an expired session.
func NewClient(baseURL string, timeout time.Duration, tokens domain.TokenSource, logger *zap.Logger, onUnauthorized func()) *Client {
	return &Client{
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: timeout},
		tokens:         tokens,
		logger:         logger,
		onUnauthorized: onUnauthorized,
	}
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		message := ""
		if json.Unmarshal(data, &envelope) == nil {
			if envelope.Error != "" {
				message = envelope.Error
			} else {
				message = envelope.Message
			}
		}
		apiErr := domain.NewAPIError(resp.StatusCode, message)

		if resp.StatusCode == http.StatusUnauthorized && token != "" && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.request(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.request(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.request(ctx, http.MethodPut, path, body, out)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	UserType    int    `json:"userType"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	CountryID   int    `json:"countryId,omitempty"`
	StateID     int    `json:"stateId,omitempty"`
	CityID      int    `json:"cityId,omitempty"`
}

type verifyOTPRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otpCode"`
}

type resendOTPRequest struct {
	Email string `json:"email"`
}

type completeProfileRequest struct {
	PhoneNumber   string `json:"phoneNumber"`
	Gender        string `json:"gender"`
	DateOfBirth   string `json:"dateOfBirth"`
	CountryID     int    `json:"countryId"`
	StateID       int    `json:"stateId"`
	CityID        int    `json:"cityId"`
	StreetAddress string `json:"streetAddress,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
}

// Login implements domain.Gateway.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	var payload authPayload
	err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.toDomain()
}

// Register implements domain.Gateway. No token comes back; the backend
// sends the OTP email instead.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) error {
	return c.post(ctx, "/auth/register", registerRequest{
		Email:       req.Email,
		Password:    req.Password,
		UserType:    int(req.UserType),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.Phone,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		CountryID:   req.CountryID,
		StateID:     req.StateID,
		CityID:      req.CityID,
	}, nil)
}

// VerifyOTP implements domain.Gateway.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	var payload authPayload
	err := c.post(ctx, "/auth/verify-otp", verifyOTPRequest{Email: email, OTPCode: code}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.toDomain()
}

// ResendOTP implements domain.Gateway.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/resend-otp", resendOTPRequest{Email: email}, nil)
}

// CompleteProfile implements domain.Gateway. The token in the result is
// empty on otp-first backends and set on profile-first ones, which issue
// the credential from this endpoint.
func (c *Client) CompleteProfile(ctx context.Context, req domain.CompleteProfileRequest) (*domain.AuthResult, error) {
	var payload authPayload
	err := c.post(ctx, "/auth/complete-profile", completeProfileRequest{
		PhoneNumber:   req.Phone,
		Gender:        req.Gender,
		DateOfBirth:   req.DateOfBirth,
		CountryID:     req.CountryID,
		StateID:       req.StateID,
		CityID:        req.CityID,
		StreetAddress: req.StreetAddress,
		PostalCode:    req.PostalCode,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{Token: payload.Token, User: payload.User.toDomain()}, nil
}

// UpdateProfile implements domain.Gateway with a partial field set.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*domain.User, error) {
	var payload userEnvelope
	if err := c.put(ctx, "/auth/profile", fields, &payload); err != nil {
		return nil, err
	}
	return payload.User.toDomain(), nil
}

// CurrentUser implements domain.Gateway.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var payload userEnvelope
	if err := c.get(ctx, "/auth/me", &payload); err != nil {
		return nil, err
	}
	return payload.User.toDomain(), nil
}

// Logout implements domain.Gateway. Best-effort server notification;
// local teardown never depends on it.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Countries implements domain.Gateway. Source order is preserved.
func (c *Client) Countries(ctx context.Context) ([]domain.Country, error) {
	var payload struct {
		Countries []countryPayload `json:"countries"`
	}
	if err := c.get(ctx, "/location/countries", &payload); err != nil {
		return nil, err
	}
	countries := make([]domain.Country, 0, len(payload.Countries))
	for _, p := range payload.Countries {
		countries = append(countries, p.toDomain())
	}
	return countries, nil
}

// States implements domain.Gateway.
func (c *Client) States(ctx context.Context, countryID int) ([]domain.State, error) {
	var payload struct {
		States []statePayload `json:"states"`
	}
	if err := c.get(ctx, fmt.Sprintf("/location/states/%d", countryID), &payload); err != nil {
		return nil, err
	}
	states := make([]domain.State, 0, len(payload.States))
	for _, p := range payload.States {
		states = append(states, p.toDomain())
	}
	return states, nil
}

// Cities implements domain.Gateway.
func (c *Client) Cities(ctx context.Context, countryID, stateID int) ([]domain.City, error) {
	var payload struct {
		Cities []cityPayload `json:"cities"`
	}
	if err := c.get(ctx, fmt.Sprintf("/location/cities/%d/%d", countryID, stateID), &payload); err != nil {
		return nil, err
	}
	cities := make([]domain.City, 0, len(payload.Cities))
	for _, p := range payload.Cities {
		cities = append(cities, p.toDomain())
	}
	return cities, nil
}

// Compile-time interface compliance verification
var _ domain.Gateway = (*Client)(nil)
