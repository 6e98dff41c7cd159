package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vcm-medical/vcmclient/domain"
	"github.com/vcm-medical/vcmclient/internal/mocks"
)

func sampleCountries() []domain.Country {
	return []domain.Country{
		{ID: 1, Name: "USA"},
		{ID: 86, Name: "China", Abbr: "CN"},
	}
}

func statesFor(countryID int) []domain.State {
	return []domain.State{
		{CountryID: countryID, ID: countryID*10 + 1, Name: "First"},
		{CountryID: countryID, ID: countryID*10 + 2, Name: "Second"},
	}
}

func TestLoadCountriesCachesResult(t *testing.T) {
	gw := mocks.NewMockGateway()
	calls := 0
	gw.CountriesFunc = func(ctx context.Context) ([]domain.Country, error) {
		calls++
		return sampleCountries(), nil
	}
	svc := NewLocationService(gw, zap.NewNop())

	first, err := svc.LoadCountries(context.Background())
	require.NoError(t, err)
	second, err := svc.LoadCountries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	// Source order preserved, no client-side sorting.
	assert.Equal(t, "USA", first[0].Name)
	assert.Equal(t, "China", first[1].Name)
}

func TestLoadCountriesFailureNotCached(t *testing.T) {
	gw := mocks.NewMockGateway()
	calls := 0
	gw.CountriesFunc = func(ctx context.Context) ([]domain.Country, error) {
		calls++
		if calls == 1 {
			return nil, domain.NewAPIError(503, "")
		}
		return sampleCountries(), nil
	}
	svc := NewLocationService(gw, zap.NewNop())

	_, err := svc.LoadCountries(context.Background())
	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 503", svc.Snapshot().LastError)

	countries, err := svc.LoadCountries(context.Background())
	require.NoError(t, err)
	assert.Len(t, countries, 2)
	assert.Empty(t, svc.Snapshot().LastError)
}

func TestLoadStatesRequiresCountry(t *testing.T) {
	svc := NewLocationService(mocks.NewMockGateway(), zap.NewNop())

	_, err := svc.LoadStates(context.Background(), 0)
	assert.True(t, errors.Is(err, domain.ErrCountryNotSelected))
}

func TestLoadCitiesRequiresAncestors(t *testing.T) {
	svc := NewLocationService(mocks.NewMockGateway(), zap.NewNop())

	_, err := svc.LoadCities(context.Background(), 0, 5)
	assert.True(t, errors.Is(err, domain.ErrCountryNotSelected))

	_, err = svc.LoadCities(context.Background(), 86, 0)
	assert.True(t, errors.Is(err, domain.ErrStateNotSelected))
}

func TestSelectingCountryInvalidatesDescendants(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.StatesFunc = func(ctx context.Context, countryID int) ([]domain.State, error) {
		return statesFor(countryID), nil
	}
	gw.CitiesFunc = func(ctx context.Context, countryID, stateID int) ([]domain.City, error) {
		return []domain.City{{CountryID: countryID, StateID: stateID, ID: 3101, Name: "Shanghai City"}}, nil
	}
	svc := NewLocationService(gw, zap.NewNop())

	// Build up a full selection chain.
	_, err := svc.LoadStates(context.Background(), 86)
	require.NoError(t, err)
	_, err = svc.LoadCities(context.Background(), 86, 861)
	require.NoError(t, err)
	svc.SelectCity(3101)

	snap := svc.Snapshot()
	require.Equal(t, 86, snap.SelectedCountry)
	require.Equal(t, 861, snap.SelectedState)
	require.Equal(t, 3101, snap.SelectedCity)

	// Re-selecting the country must clear everything below it before the
	// fetch completes, not after.
	release := make(chan struct{})
	entered := make(chan struct{})
	gw.StatesFunc = func(ctx context.Context, countryID int) ([]domain.State, error) {
		close(entered)
		<-release
		return statesFor(countryID), nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.LoadStates(context.Background(), 1)
	}()

	<-entered
	mid := svc.Snapshot()
	assert.Equal(t, 1, mid.SelectedCountry)
	assert.Zero(t, mid.SelectedState)
	assert.Zero(t, mid.SelectedCity)
	assert.Nil(t, mid.States)
	assert.Nil(t, mid.Cities)
	assert.True(t, mid.LoadingStates)

	close(release)
	<-done

	final := svc.Snapshot()
	assert.False(t, final.LoadingStates)
	require.Len(t, final.States, 2)
	assert.Equal(t, 1, final.States[0].CountryID)
}

func TestLoadStatesLastRequestWins(t *testing.T) {
	gw := mocks.NewMockGateway()

	firstEntered := make(chan struct{})
	firstRelease := make(chan struct{})
	gw.StatesFunc = func(ctx context.Context, countryID int) ([]domain.State, error) {
		if countryID == 1 {
			close(firstEntered)
			<-firstRelease
		}
		return statesFor(countryID), nil
	}
	svc := NewLocationService(gw, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	var slowStates []domain.State
	go func() {
		defer wg.Done()
		slowStates, _ = svc.LoadStates(context.Background(), 1)
	}()

	<-firstEntered
	fast, err := svc.LoadStates(context.Background(), 86)
	require.NoError(t, err)
	require.Len(t, fast, 2)

	// The slow reply for the abandoned country must be dropped.
	close(firstRelease)
	wg.Wait()
	assert.Nil(t, slowStates)

	snap := svc.Snapshot()
	assert.Equal(t, 86, snap.SelectedCountry)
	require.Len(t, snap.States, 2)
	assert.Equal(t, 86, snap.States[0].CountryID)
	assert.False(t, snap.LoadingStates)
}

func TestLoadCitiesLastRequestWins(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.StatesFunc = func(ctx context.Context, countryID int) ([]domain.State, error) {
		return statesFor(countryID), nil
	}

	slowEntered := make(chan struct{})
	slowRelease := make(chan struct{})
	gw.CitiesFunc = func(ctx context.Context, countryID, stateID int) ([]domain.City, error) {
		if stateID == 861 {
			close(slowEntered)
			<-slowRelease
		}
		return []domain.City{{CountryID: countryID, StateID: stateID, ID: stateID * 100, Name: "City"}}, nil
	}
	svc := NewLocationService(gw, zap.NewNop())

	_, err := svc.LoadStates(context.Background(), 86)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	var slowCities []domain.City
	go func() {
		defer wg.Done()
		slowCities, _ = svc.LoadCities(context.Background(), 86, 861)
	}()

	<-slowEntered
	fast, err := svc.LoadCities(context.Background(), 86, 862)
	require.NoError(t, err)
	require.Len(t, fast, 1)

	close(slowRelease)
	wg.Wait()
	assert.Nil(t, slowCities)

	snap := svc.Snapshot()
	assert.Equal(t, 862, snap.SelectedState)
	require.Len(t, snap.Cities, 1)
	assert.Equal(t, 86200, snap.Cities[0].ID)
}

func TestCountryChangeInvalidatesInFlightCityLoad(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.StatesFunc = func(ctx context.Context, countryID int) ([]domain.State, error) {
		return statesFor(countryID), nil
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	gw.CitiesFunc = func(ctx context.Context, countryID, stateID int) ([]domain.City, error) {
		close(entered)
		<-release
		return []domain.City{{CountryID: countryID, StateID: stateID, ID: 99, Name: "Stale"}}, nil
	}
	svc := NewLocationService(gw, zap.NewNop())

	_, err := svc.LoadStates(context.Background(), 86)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-entered
		// Switching country mid-flight obsoletes the city request too.
		_, _ = svc.LoadStates(context.Background(), 1)
		close(release)
	}()

	cities, err := svc.LoadCities(context.Background(), 86, 861)
	wg.Wait()
	require.NoError(t, err)
	assert.Nil(t, cities)

	snap := svc.Snapshot()
	assert.Equal(t, 1, snap.SelectedCountry)
	assert.Nil(t, snap.Cities)
}

func TestLoadStatesFailureKeepsAncestors(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.CountriesFunc = func(ctx context.Context) ([]domain.Country, error) {
		return sampleCountries(), nil
	}
	gw.StatesFunc = func(ctx context.Context, countryID int) ([]domain.State, error) {
		return nil, domain.NewAPIError(503, "Service unavailable")
	}
	svc := NewLocationService(gw, zap.NewNop())

	_, err := svc.LoadCountries(context.Background())
	require.NoError(t, err)

	_, err = svc.LoadStates(context.Background(), 86)
	require.Error(t, err)

	snap := svc.Snapshot()
	assert.Len(t, snap.Countries, 2)
	assert.Equal(t, 86, snap.SelectedCountry)
	assert.Empty(t, snap.States)
	assert.Equal(t, "Service unavailable", snap.LastError)
	assert.False(t, snap.LoadingStates)
}

func TestClearLocationError(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.StatesFunc = func(ctx context.Context, countryID int) ([]domain.State, error) {
		return nil, domain.NewAPIError(500, "")
	}
	svc := NewLocationService(gw, zap.NewNop())

	_, err := svc.LoadStates(context.Background(), 86)
	require.Error(t, err)
	require.NotEmpty(t, svc.Snapshot().LastError)

	svc.ClearError()
	assert.Empty(t, svc.Snapshot().LastError)
}
