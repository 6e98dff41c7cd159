package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/vcm-medical/vcmclient/domain"
)

// LocationSnapshot is the read-only view of the cascading selector.
type LocationSnapshot struct {
	Countries []domain.Country
	States    []domain.State
	Cities    []domain.City

	SelectedCountry int
	SelectedState   int
	SelectedCity    int

	LoadingStates bool
	LoadingCities bool
	LastError     string
}

// LocationService loads the country → state → city hierarchy for
// profile forms. Selecting a new ancestor invalidates every descendant
// selection before the fetch, and responses apply last-request-wins: a
// slow reply for a previously selected ancestor is discarded.
type LocationService struct {
	gateway domain.Gateway
	logger  *zap.Logger

	mu              sync.Mutex
	countries       []domain.Country
	countriesLoaded bool
	states          []domain.State
	cities          []domain.City
	selectedCountry int
	selectedState   int
	selectedCity    int
	loadingStates   bool
	loadingCities   bool
	lastError       string

	// generation counters implement last-request-wins per level
	stateGen uint64
	cityGen  uint64
}

// NewLocationService creates a selector bound to the gateway. Reference
// data lives only in memory for the lifetime of the service.
func NewLocationService(gateway domain.Gateway, logger *zap.Logger) *LocationService {
	return &LocationService{gateway: gateway, logger: logger}
}

// Snapshot returns the current selector view.
func (s *LocationService) Snapshot() LocationSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LocationSnapshot{
		Countries:       s.countries,
		States:          s.states,
		Cities:          s.cities,
		SelectedCountry: s.selectedCountry,
		SelectedState:   s.selectedState,
		SelectedCity:    s.selectedCity,
		LoadingStates:   s.loadingStates,
		LoadingCities:   s.loadingCities,
		LastError:       s.lastError,
	}
}

// LoadCountries fetches the country list once and caches it; source
// order is preserved as returned by the backend.
func (s *LocationService) LoadCountries(ctx context.Context) ([]domain.Country, error) {
	s.mu.Lock()
	if s.countriesLoaded {
		countries := s.countries
		s.mu.Unlock()
		return countries, nil
	}
	s.mu.Unlock()

	countries, err := s.gateway.Countries(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		s.logger.Warn("failed to load countries", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.countries = countries
	s.countriesLoaded = true
	s.lastError = ""
	s.mu.Unlock()
	return countries, nil
}

// LoadStates selects a country and fetches its states. The previous
// state list and any selected state/city are invalidated before the
// request goes out, never after the new list arrives.
func (s *LocationService) LoadStates(ctx context.Context, countryID int) ([]domain.State, error) {
	if countryID == 0 {
		return nil, domain.ErrCountryNotSelected
	}

	s.mu.Lock()
	s.selectedCountry = countryID
	s.selectedState = 0
	s.selectedCity = 0
	s.states = nil
	s.cities = nil
	s.loadingStates = true
	s.loadingCities = false
	s.stateGen++
	s.cityGen++ // in-flight city loads for the old state are stale too
	gen := s.stateGen
	s.mu.Unlock()

	states, err := s.gateway.States(ctx, countryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.stateGen || s.selectedCountry != countryID {
		// A newer selection owns the list now; drop this response.
		s.logger.Debug("discarding stale states response", zap.Int("country_id", countryID))
		return nil, nil
	}
	s.loadingStates = false
	if err != nil {
		s.lastError = err.Error()
		return nil, err
	}
	s.states = states
	s.lastError = ""
	return states, nil
}

// LoadCities fetches cities for a confirmed country+state pair,
// invalidating any selected city first. Same last-request-wins rule as
// LoadStates.
func (s *LocationService) LoadCities(ctx context.Context, countryID, stateID int) ([]domain.City, error) {
	if countryID == 0 {
		return nil, domain.ErrCountryNotSelected
	}
	if stateID == 0 {
		return nil, domain.ErrStateNotSelected
	}

	s.mu.Lock()
	s.selectedState = stateID
	s.selectedCity = 0
	s.cities = nil
	s.loadingCities = true
	s.cityGen++
	gen := s.cityGen
	s.mu.Unlock()

	cities, err := s.gateway.Cities(ctx, countryID, stateID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.cityGen || s.selectedState != stateID {
		s.logger.Debug("discarding stale cities response",
			zap.Int("country_id", countryID),
			zap.Int("state_id", stateID))
		return nil, nil
	}
	s.loadingCities = false
	if err != nil {
		s.lastError = err.Error()
		return nil, err
	}
	s.cities = cities
	s.lastError = ""
	return cities, nil
}

// SelectCity records the final leaf selection.
func (s *LocationService) SelectCity(cityID int) {
	s.mu.Lock()
	s.selectedCity = cityID
	s.mu.Unlock()
}

// ClearError clears the last surfaced fetch error.
func (s *LocationService) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}
