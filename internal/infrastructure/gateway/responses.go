package gateway

import (
	"errors"
	"time"

	"github.com/vcm-medical/vcmclient/domain"
)

// The backend's drafts disagree on field spelling: the GORM-tagged
// handlers emit snake_case (ty_user, cd_country), the fiber.Map ones
// emit camelCase (userType, profileComplete). The payload types below
// accept every spelling seen in the wild and map to the one canonical
// domain record, so nothing past this file knows about the drift.

type userPayload struct {
	ID     *uint `json:"id"`
	CdUser *uint `json:"cd_user"`

	Email string `json:"email"`
	Name  string `json:"name"`

	UserType    *int `json:"userType"`
	TyUser      *int `json:"ty_user"`
	TyUserCamel *int `json:"tyUser"`

	FirstName      string `json:"firstName"`
	FirstNameSnake string `json:"first_name"`
	LastName       string `json:"lastName"`
	LastNameSnake  string `json:"last_name"`

	Status     string `json:"status"`
	UserStatus string `json:"user_status"`

	Phone       string `json:"phone"`
	PhoneNumber string `json:"phone_number"`

	Gender string `json:"gender"`

	DateOfBirth      string `json:"dateOfBirth"`
	DateOfBirthSnake string `json:"date_of_birth"`

	CountryID *int `json:"countryId"`
	CdCountry *int `json:"cd_country"`
	StateID   *int `json:"stateId"`
	CdState   *int `json:"cd_state"`
	CityID    *int `json:"cityId"`
	CdCity    *int `json:"cd_city"`

	StreetAddress      string `json:"streetAddress"`
	StreetAddressSnake string `json:"street_address"`
	PostalCode         string `json:"postalCode"`
	PostalCodeSnake    string `json:"postal_code"`

	ProfileComplete      *bool `json:"profileComplete"`
	ProfileCompleteSnake *bool `json:"profile_complete"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type userEnvelope struct {
	User userPayload `json:"user"`
}

type authPayload struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

var errMissingToken = errors.New("auth response missing token")

func (p authPayload) toDomain() (*domain.AuthResult, error) {
	if p.Token == "" {
		return nil, errMissingToken
	}
	return &domain.AuthResult{Token: p.Token, User: p.User.toDomain()}, nil
}

func (p userPayload) toDomain() *domain.User {
	user := &domain.User{
		ID:            firstUint(p.ID, p.CdUser),
		Email:         p.Email,
		UserType:      domain.UserType(firstInt(p.UserType, p.TyUser, p.TyUserCamel)),
		FirstName:     firstStr(p.FirstName, p.FirstNameSnake),
		LastName:      firstStr(p.LastName, p.LastNameSnake),
		Status:        firstStr(p.Status, p.UserStatus),
		Phone:         firstStr(p.Phone, p.PhoneNumber),
		Gender:        p.Gender,
		DateOfBirth:   parseDate(firstStr(p.DateOfBirth, p.DateOfBirthSnake)),
		CountryID:     firstInt(p.CountryID, p.CdCountry),
		StateID:       firstInt(p.StateID, p.CdState),
		CityID:        firstInt(p.CityID, p.CdCity),
		StreetAddress: firstStr(p.StreetAddress, p.StreetAddressSnake),
		PostalCode:    firstStr(p.PostalCode, p.PostalCodeSnake),
		CreatedAt:     parseDate(p.CreatedAt),
		UpdatedAt:     parseDate(p.UpdatedAt),
	}

	switch {
	case p.ProfileComplete != nil:
		user.ProfileComplete = *p.ProfileComplete
	case p.ProfileCompleteSnake != nil:
		user.ProfileComplete = *p.ProfileCompleteSnake
	default:
		// Older drafts omit the flag; derive it the way the backend does.
		user.ProfileComplete = user.FirstName != "" && user.LastName != "" && user.Phone != ""
	}

	return user
}

type countryPayload struct {
	ID        *int   `json:"id"`
	CdCountry *int   `json:"cd_country"`
	CdCamel   *int   `json:"cdCountry"`
	Name      string `json:"name"`
	NameSnake string `json:"country_name"`
	NameCamel string `json:"countryName"`
	Abbr      string `json:"country_abbr"`
	AbbrCamel string `json:"countryAbbr"`
}

func (p countryPayload) toDomain() domain.Country {
	return domain.Country{
		ID:   firstInt(p.CdCountry, p.CdCamel, p.ID),
		Name: firstStr(p.NameSnake, p.NameCamel, p.Name),
		Abbr: firstStr(p.Abbr, p.AbbrCamel),
	}
}

type statePayload struct {
	CdCountry    *int   `json:"cd_country"`
	CountryCamel *int   `json:"cdCountry"`
	ID           *int   `json:"id"`
	CdState      *int   `json:"cd_state"`
	CdCamel      *int   `json:"cdState"`
	Name         string `json:"name"`
	NameSnake    string `json:"state_name"`
	NameCamel    string `json:"stateName"`
	Abbr         string `json:"state_abbr"`
	AbbrCamel    string `json:"stateAbbr"`
}

func (p statePayload) toDomain() domain.State {
	return domain.State{
		CountryID: firstInt(p.CdCountry, p.CountryCamel),
		ID:        firstInt(p.CdState, p.CdCamel, p.ID),
		Name:      firstStr(p.NameSnake, p.NameCamel, p.Name),
		Abbr:      firstStr(p.Abbr, p.AbbrCamel),
	}
}

type cityPayload struct {
	CdCountry    *int   `json:"cd_country"`
	CountryCamel *int   `json:"cdCountry"`
	CdState      *int   `json:"cd_state"`
	StateCamel   *int   `json:"cdState"`
	ID           *int   `json:"id"`
	CdCity       *int   `json:"cd_city"`
	CdCamel      *int   `json:"cdCity"`
	Name         string `json:"name"`
	NameSnake    string `json:"city_name"`
	NameCamel    string `json:"cityName"`
	Abbr         string `json:"city_abbr"`
	AbbrCamel    string `json:"cityAbbr"`
}

func (p cityPayload) toDomain() domain.City {
	return domain.City{
		CountryID: firstInt(p.CdCountry, p.CountryCamel),
		StateID:   firstInt(p.CdState, p.StateCamel),
		ID:        firstInt(p.CdCity, p.CdCamel, p.ID),
		Name:      firstStr(p.NameSnake, p.NameCamel, p.Name),
		Abbr:      firstStr(p.Abbr, p.AbbrCamel),
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstInt(candidates ...*int) int {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}

func firstUint(candidates ...*uint) uint {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}

func firstStr(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
