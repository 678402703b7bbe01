package dashboard

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/weatherupdate/weatherupdate/internal/dashboard/store"
)

// DefaultLocation seeds the app before the user saves a location of their
// own.
var DefaultLocation = Location{City: "Pretoria", Country: "ZA"}

const locationStoreKey = "weatherupdate.app.location"

// Location is the user's chosen city and 2-letter country code.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Normalize trims both fields and upper-cases the country. Applied on every
// write and before any location is used as a cache key.
func (l Location) Normalize() Location {
	return Location{
		City:    strings.TrimSpace(l.City),
		Country: strings.ToUpper(strings.TrimSpace(l.Country)),
	}
}

// Active reports whether both fields are set.
func (l Location) Active() bool {
	return l.City != "" && l.Country != ""
}

func (l Location) String() string {
	return fmt.Sprintf("%s, %s", l.City, l.Country)
}

// CacheKey is the per-location key for the composite weather snapshot.
func CacheKey(loc Location) string {
	loc = loc.Normalize()
	return fmt.Sprintf("weatherupdate.currentWeatherPage.%s.%s", loc.Country, strings.ToLower(loc.City))
}

// AlertsCacheKey is the per-location key for the cached alerts view.
func AlertsCacheKey(loc Location) string {
	loc = loc.Normalize()
	return fmt.Sprintf("weatherupdate.alertsPage.%s.%s", loc.Country, strings.ToLower(loc.City))
}

// AppState holds the active location for the process. It is constructed once
// and injected into every consumer rather than looked up ambiently; the
// store is the only persistence boundary.
type AppState struct {
	mu       sync.Mutex
	store    *store.Store
	location Location
}

// NewAppState loads the persisted location, falling back to the default.
// A bad persisted value is ignored, not an error.
func NewAppState(st *store.Store) *AppState {
	state := &AppState{store: st, location: DefaultLocation}

	var saved Location
	ok, err := st.GetJSON(locationStoreKey, &saved)
	if err != nil {
		log.Printf("ERROR [dashboard.AppState] failed to load persisted location: %v", err)
		return state
	}
	if ok {
		saved = saved.Normalize()
		if saved.Active() {
			state.location = saved
		}
	}

	return state
}

func (a *AppState) Location() Location {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

// SetLocation normalizes, applies, and persists the new location. Store
// write failures are logged and swallowed; the in-memory state still moves.
func (a *AppState) SetLocation(loc Location) Location {
	loc = loc.Normalize()

	a.mu.Lock()
	a.location = loc
	a.mu.Unlock()

	if err := a.store.SetJSON(locationStoreKey, loc); err != nil {
		log.Printf("ERROR [dashboard.AppState] failed to persist location: %v", err)
	}

	return loc
}
