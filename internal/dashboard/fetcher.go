package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/weatherupdate/weatherupdate/internal/dashboard/store"
	"github.com/weatherupdate/weatherupdate/internal/weatherbit"
)

// forecastDays caps the forecast slice to the 3 days the dashboard renders.
const forecastDays = 3

const (
	fallbackCurrentError  = "Failed to load current weather."
	fallbackForecastError = "Failed to load daily forecast."
	fallbackHistoryError  = "Failed to load daily history."
	fallbackAlertsError   = "Failed to load weather alerts."
)

// WeatherAPI is the surface of the API client the fetcher needs.
type WeatherAPI interface {
	CurrentWeather(ctx context.Context, city, country string, refresh bool) (*weatherbit.CurrentWeatherResponse, error)
	DailyForecast(ctx context.Context, city, country string, days int, refresh bool) (*weatherbit.DailyForecastResponse, error)
	DailyHistory(ctx context.Context, city, country string, refresh bool) (*weatherbit.DailyHistoryResponse, error)
	WeatherAlerts(ctx context.Context, city, country string) (*weatherbit.WeatherAlertsResponse, error)
}

// Snapshot is the composite weather state for one location. Each slice is
// fetched and cached independently; any of them may be nil.
type Snapshot struct {
	CurrentWeather *weatherbit.CurrentWeatherResponse `json:"currentWeather"`
	DailyForecast  *weatherbit.DailyForecastResponse  `json:"dailyForecast"`
	DailyHistory   *weatherbit.DailyHistoryResponse   `json:"dailyHistory"`
}

// SliceErrors carries the per-slice failure messages. An empty string means
// the slice's last settlement succeeded (or was hydrated from cache).
type SliceErrors struct {
	Current  string
	Forecast string
	History  string
}

// Fetcher issues the three weather calls concurrently, merges partial
// results, and persists the last good composite per location. A failed
// slice keeps its previous value and records its own error; the other
// slices are unaffected.
type Fetcher struct {
	mu    sync.Mutex
	api   WeatherAPI
	store *store.Store

	snapshot Snapshot
	errs     SliceErrors

	alerts    *weatherbit.WeatherAlertsResponse
	alertsErr string

	// seq is the latest issued fetch token. A settling fetch applies its
	// results only while its token is still current, so an overlapping
	// refresh or location change discards the stale settlement instead of
	// racing on last-write-wins. alertsSeq is the alerts counterpart;
	// the two streams settle independently.
	seq       uint64
	alertsSeq uint64
}

func NewFetcher(api WeatherAPI, st *store.Store) *Fetcher {
	return &Fetcher{api: api, store: st}
}

// Snapshot returns the current composite state.
func (f *Fetcher) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

// Errors returns the per-slice error messages.
func (f *Fetcher) Errors() SliceErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Load hydrates the snapshot for loc from the local cache when an entry
// exists, skipping the network entirely; otherwise it falls through to a
// fetch. Mirrors the mount path of the dashboard page.
func (f *Fetcher) Load(ctx context.Context, loc Location) {
	loc = loc.Normalize()
	if !loc.Active() {
		return
	}

	var cached Snapshot
	ok, err := f.store.GetJSON(CacheKey(loc), &cached)
	if err != nil {
		log.Printf("ERROR [dashboard.Fetcher] cache read failed: %v", err)
	}
	if ok {
		f.mu.Lock()
		f.seq++ // invalidate any in-flight fetch for a previous location
		if cached.CurrentWeather != nil {
			f.snapshot.CurrentWeather = cached.CurrentWeather
		}
		if cached.DailyForecast != nil {
			f.snapshot.DailyForecast = cached.DailyForecast
		}
		if cached.DailyHistory != nil {
			f.snapshot.DailyHistory = cached.DailyHistory
		}
		f.errs = SliceErrors{}
		f.mu.Unlock()
		return
	}

	f.Fetch(ctx, loc, false)
}

// Fetch issues the three weather calls concurrently and waits for all of
// them to settle. forceRefresh bypasses the HTTP caches on all three.
// Failures never surface as errors here: they land in per-slice state.
func (f *Fetcher) Fetch(ctx context.Context, loc Location, forceRefresh bool) {
	loc = loc.Normalize()
	if !loc.Active() {
		return
	}

	f.mu.Lock()
	f.seq++
	token := f.seq
	prev := f.snapshot
	f.mu.Unlock()

	var (
		currentRes  *weatherbit.CurrentWeatherResponse
		forecastRes *weatherbit.DailyForecastResponse
		historyRes  *weatherbit.DailyHistoryResponse
		currentErr  error
		forecastErr error
		historyErr  error
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		currentRes, currentErr = f.api.CurrentWeather(ctx, loc.City, loc.Country, forceRefresh)
	}()
	go func() {
		defer wg.Done()
		forecastRes, forecastErr = f.api.DailyForecast(ctx, loc.City, loc.Country, forecastDays, forceRefresh)
	}()
	go func() {
		defer wg.Done()
		historyRes, historyErr = f.api.DailyHistory(ctx, loc.City, loc.Country, forceRefresh)
	}()

	wg.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()

	if token != f.seq {
		// A newer fetch or location change superseded this one.
		return
	}

	if currentErr == nil {
		f.snapshot.CurrentWeather = currentRes
		f.errs.Current = ""
	} else {
		f.snapshot.CurrentWeather = prev.CurrentWeather
		f.errs.Current = errorMessage(currentErr, fallbackCurrentError)
	}

	if forecastErr == nil {
		f.snapshot.DailyForecast = forecastRes
		f.errs.Forecast = ""
	} else {
		f.snapshot.DailyForecast = prev.DailyForecast
		f.errs.Forecast = errorMessage(forecastErr, fallbackForecastError)
	}

	if historyErr == nil {
		f.snapshot.DailyHistory = historyRes
		f.errs.History = ""
	} else {
		f.snapshot.DailyHistory = prev.DailyHistory
		f.errs.History = errorMessage(historyErr, fallbackHistoryError)
	}

	if currentErr == nil || forecastErr == nil || historyErr == nil {
		// Persist the merged composite: fresh slices plus whatever survived
		// from before. Cache write failures never surface to the user.
		if err := f.store.SetJSON(CacheKey(loc), f.snapshot); err != nil {
			log.Printf("ERROR [dashboard.Fetcher] cache write failed: %v", err)
		}
	}
}

// Alerts returns the cached alerts view and its error state.
func (f *Fetcher) Alerts() (*weatherbit.WeatherAlertsResponse, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alerts, f.alertsErr
}

// LoadAlerts hydrates alerts for loc from the cache, fetching on a miss.
func (f *Fetcher) LoadAlerts(ctx context.Context, loc Location) {
	loc = loc.Normalize()
	if !loc.Active() {
		return
	}

	var cached weatherbit.WeatherAlertsResponse
	ok, err := f.store.GetJSON(AlertsCacheKey(loc), &cached)
	if err != nil {
		log.Printf("ERROR [dashboard.Fetcher] alerts cache read failed: %v", err)
	}
	if ok {
		f.mu.Lock()
		f.alertsSeq++ // invalidate any in-flight alerts fetch
		f.alerts = &cached
		f.alertsErr = ""
		f.mu.Unlock()
		return
	}

	f.FetchAlerts(ctx, loc)
}

// FetchAlerts fetches active alerts and caches them per location. A failure
// keeps the previous value, like the weather slices.
func (f *Fetcher) FetchAlerts(ctx context.Context, loc Location) {
	loc = loc.Normalize()
	if !loc.Active() {
		return
	}

	f.mu.Lock()
	f.alertsSeq++
	token := f.alertsSeq
	f.mu.Unlock()

	alerts, err := f.api.WeatherAlerts(ctx, loc.City, loc.Country)

	f.mu.Lock()
	defer f.mu.Unlock()

	if token != f.alertsSeq {
		// A newer alerts fetch or cache hydration superseded this one.
		return
	}

	if err != nil {
		f.alertsErr = errorMessage(err, fallbackAlertsError)
		return
	}

	f.alerts = alerts
	f.alertsErr = ""

	if err := f.store.SetJSON(AlertsCacheKey(loc), alerts); err != nil {
		log.Printf("ERROR [dashboard.Fetcher] alerts cache write failed: %v", err)
	}
}

func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
