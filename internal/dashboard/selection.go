package dashboard

import "github.com/weatherupdate/weatherupdate/internal/weatherbit"

// SelectionKind tags which day drives the primary metric display.
type SelectionKind string

const (
	SelectCurrent  SelectionKind = "current"
	SelectForecast SelectionKind = "forecast"
	SelectHistory  SelectionKind = "history"
)

// SnapshotSelection chooses the single snapshot projected into the metric
// view: live conditions, one forecast day, or one history day. Selection is
// pure view state; changing it never triggers a fetch.
type SnapshotSelection struct {
	kind        SelectionKind
	forecastDay *weatherbit.ForecastDay
	historyDay  *weatherbit.HistoryDay
}

// NewSnapshotSelection starts at the current-conditions snapshot.
func NewSnapshotSelection() *SnapshotSelection {
	return &SnapshotSelection{kind: SelectCurrent}
}

func (s *SnapshotSelection) Kind() SelectionKind {
	if s.kind == "" {
		return SelectCurrent
	}
	return s.kind
}

// SelectForecastDay switches the display to one forecast day.
func (s *SnapshotSelection) SelectForecastDay(day weatherbit.ForecastDay) {
	s.kind = SelectForecast
	s.forecastDay = &day
	s.historyDay = nil
}

// SelectHistoryDay switches the display to one history day.
func (s *SnapshotSelection) SelectHistoryDay(day weatherbit.HistoryDay) {
	s.kind = SelectHistory
	s.historyDay = &day
	s.forecastDay = nil
}

// ShowCurrent returns to live conditions.
func (s *SnapshotSelection) ShowCurrent() {
	s.kind = SelectCurrent
	s.forecastDay = nil
	s.historyDay = nil
}

// Reset is invoked when the active location changes; the selection always
// falls back to current conditions for a new location.
func (s *SnapshotSelection) Reset() {
	s.ShowCurrent()
}

// ForecastDay returns the selected forecast day when Kind is forecast.
func (s *SnapshotSelection) ForecastDay() (weatherbit.ForecastDay, bool) {
	if s.kind != SelectForecast || s.forecastDay == nil {
		return weatherbit.ForecastDay{}, false
	}
	return *s.forecastDay, true
}

// HistoryDay returns the selected history day when Kind is history.
func (s *SnapshotSelection) HistoryDay() (weatherbit.HistoryDay, bool) {
	if s.kind != SelectHistory || s.historyDay == nil {
		return weatherbit.HistoryDay{}, false
	}
	return *s.historyDay, true
}
