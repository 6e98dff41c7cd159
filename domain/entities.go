package domain

import "time"

// UserType classifies the role a user registered as.
type UserType int

const (
	UserTypePatient      UserType = 0
	UserTypeAgent        UserType = 1
	UserTypeSalesChannel UserType = 2
	UserTypeInfluencer   UserType = 3
	UserTypeDistributor  UserType = 4
	UserTypeDoctor       UserType = 5
	UserTypeOperator     UserType = 10
	UserTypeAdmin        UserType = 11
	UserTypeSuperAdmin   UserType = 12
)

var userTypeLabels = map[UserType]string{
	UserTypePatient:      "Patient",
	UserTypeAgent:        "Agent",
	UserTypeSalesChannel: "Sales Channel",
	UserTypeInfluencer:   "Influencer",
	UserTypeDistributor:  "Distributor",
	UserTypeDoctor:       "Doctor",
	UserTypeOperator:     "Operator",
	UserTypeAdmin:        "Admin",
	UserTypeSuperAdmin:   "Super Admin",
}

// Label returns the display name for the user type. Unrecognized values
// are labeled "Unknown" rather than rejected; the backend may add types
// before this client learns about them.
func (t UserType) Label() string {
	if label, ok := userTypeLabels[t]; ok {
		return label
	}
	return "Unknown"
}

// User is the canonical profile record. Backend responses spell these
// fields inconsistently (snake_case vs camelCase); the gateway normalizes
// every variant into this one shape.
type User struct {
	ID              uint
	Email           string
	FirstName       string
	LastName        string
	UserType        UserType
	Status          string
	Phone           string
	Gender          string
	DateOfBirth     time.Time
	CountryID       int
	StateID         int
	CityID          int
	StreetAddress   string
	PostalCode      string
	ProfileComplete bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName returns "First Last", falling back to the email when the
// profile has not been completed yet.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Email
}

// Session is the persisted authentication context: the current user and
// the opaque bearer credential, always present or absent together.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// IsAuthenticated reports whether the session holds a complete
// user+token pair. A record with only one of the two is corrupt.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil && s.Token != ""
}

// AuthState is the controller-side position in the authentication flow.
type AuthState string

const (
	StateAnonymous                 AuthState = "anonymous"
	StateRegistering               AuthState = "registering"
	StateAuthenticating            AuthState = "authenticating"
	StateAwaitingVerification      AuthState = "awaiting_verification"
	StateVerifiedIncompleteProfile AuthState = "verified_incomplete_profile"
	StateAuthenticated             AuthState = "authenticated"
)

// AuthResult is what the backend returns from login and OTP verification.
type AuthResult struct {
	User  *User
	Token string
}

// RegisterRequest carries the fields accepted by POST /auth/register.
// Registration never yields a token; it only triggers the OTP email.
type RegisterRequest struct {
	Email       string
	Password    string
	UserType    UserType
	FirstName   string
	LastName    string
	Phone       string
	Gender      string
	DateOfBirth string
	CountryID   int
	StateID     int
	CityID      int
}

// CompleteProfileRequest carries the fields for POST /auth/complete-profile.
type CompleteProfileRequest struct {
	Phone         string
	Gender        string
	DateOfBirth   string
	CountryID     int
	StateID       int
	CityID        int
	StreetAddress string
	PostalCode    string
}

// Country is a top-level location record.
type Country struct {
	ID   int
	Name string
	Abbr string
}

// State belongs to exactly one country.
type State struct {
	CountryID int
	ID        int
	Name      string
	Abbr      string
}

// City belongs to exactly one state within a country.
type City struct {
	CountryID int
	StateID   int
	ID        int
	Name      string
	Abbr      string
}
