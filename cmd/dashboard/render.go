package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/weatherupdate/weatherupdate/internal/dashboard"
	"github.com/weatherupdate/weatherupdate/internal/weatherbit"
)

// show renders the composite weather view: current conditions by default, or
// one forecast/history day when selected, mirroring the snapshot cards of
// the web dashboard.
func (a *app) show(args []string) {
	flags := flag.NewFlagSet("show", flag.ExitOnError)
	refresh := flags.Bool("refresh", false, "bypass local and HTTP caches")
	forecastDay := flags.Int("forecast", 0, "select forecast day N (1-3) instead of current conditions")
	historyDay := flags.Int("history", 0, "select history day N (1-3) instead of current conditions")
	_ = flags.Parse(args)

	loc := a.state.Location()
	if !loc.Active() {
		fmt.Fprintln(os.Stderr, "no active location; run set-location first")
		os.Exit(1)
	}

	if *refresh {
		a.fetcher.Fetch(a.ctx, loc, true)
	} else {
		a.fetcher.Load(a.ctx, loc)
	}

	snapshot := a.fetcher.Snapshot()
	errs := a.fetcher.Errors()

	selection := dashboard.NewSnapshotSelection()
	if *forecastDay > 0 && snapshot.DailyForecast != nil && *forecastDay <= len(snapshot.DailyForecast.Data) {
		selection.SelectForecastDay(snapshot.DailyForecast.Data[*forecastDay-1])
	} else if *historyDay > 0 && snapshot.DailyHistory != nil && *historyDay <= len(snapshot.DailyHistory.Data) {
		selection.SelectHistoryDay(snapshot.DailyHistory.Data[*historyDay-1])
	}

	fmt.Printf("Weather for %s\n\n", loc)

	switch selection.Kind() {
	case dashboard.SelectForecast:
		day, _ := selection.ForecastDay()
		renderForecastDay(day)
	case dashboard.SelectHistory:
		day, _ := selection.HistoryDay()
		renderHistoryDay(day)
	default:
		renderCurrent(snapshot, errs)
	}

	renderSummaries(snapshot, errs)
}

func renderCurrent(snapshot dashboard.Snapshot, errs dashboard.SliceErrors) {
	if errs.Current != "" {
		fmt.Printf("  current weather unavailable: %s\n", errs.Current)
	}
	if snapshot.CurrentWeather == nil || len(snapshot.CurrentWeather.Data) == 0 {
		if errs.Current == "" {
			fmt.Println("  no current weather data")
		}
		return
	}

	obs := snapshot.CurrentWeather.Data[0]
	fmt.Printf("Now in %s: %s\n", obs.CityName, obs.Weather.Description)
	metric("Temperature", "%.1f C", obs.Temp)
	metric("Feels like", "%.1f C", obs.AppTemp)
	metric("Humidity", "%.0f%%", obs.RH)
	metric("Wind", "%.1f m/s %s", obs.WindSpd, obs.WindCdir)
	metric("Pressure", "%.1f mb", obs.Pres)
	metric("Visibility", "%.1f km", obs.Vis)
	metric("UV index", "%.1f", obs.UV)
	metric("Precipitation", "%.1f mm/hr", obs.Precip)
	fmt.Printf("  %-14s %s / %s\n", "Sun", obs.Sunrise, obs.Sunset)
}

func renderForecastDay(day weatherbit.ForecastDay) {
	fmt.Printf("Forecast for %s: %s\n", day.ValidDate, day.Weather.Description)
	metric("High / Low", "%.1f C / %.1f C", day.HighTemp, day.LowTemp)
	metric("Feels like", "%.1f C / %.1f C", day.AppMaxTemp, day.AppMinTemp)
	metric("Rain chance", "%.0f%%", day.Pop)
	metric("Precipitation", "%.1f mm", day.Precip)
	metric("Humidity", "%.0f%%", day.RH)
	metric("Wind", "%.1f m/s %s", day.WindSpd, day.WindCdir)
	metric("Clouds", "%.0f%%", day.Clouds)
	metric("UV index", "%.1f", day.UV)
}

func renderHistoryDay(day weatherbit.HistoryDay) {
	fmt.Printf("History for %s\n", day.Datetime)
	metric("Avg temp", "%.1f C", day.Temp)
	metric("High / Low", "%.1f C / %.1f C", day.MaxTemp, day.MinTemp)
	metric("Humidity", "%.0f%%", day.RH)
	metric("Precipitation", "%.1f mm", day.Precip)
	metric("Pressure", "%.1f mb", day.Pres)
	metric("Wind", "%.1f m/s", day.WindSpd)
}

func renderSummaries(snapshot dashboard.Snapshot, errs dashboard.SliceErrors) {
	fmt.Println()

	if errs.Forecast != "" {
		fmt.Printf("Forecast unavailable: %s\n", errs.Forecast)
	} else if snapshot.DailyForecast != nil {
		fmt.Println("Forecast:")
		for _, day := range snapshot.DailyForecast.Data {
			fmt.Printf("  %s  %5.1f/%5.1f C  %s\n", day.ValidDate, day.HighTemp, day.LowTemp, day.Weather.Description)
		}
	}

	if errs.History != "" {
		fmt.Printf("History unavailable: %s\n", errs.History)
	} else if snapshot.DailyHistory != nil {
		fmt.Println("History:")
		for _, day := range snapshot.DailyHistory.Data {
			fmt.Printf("  %s  %5.1f/%5.1f C  %.1f mm\n", day.Datetime, day.MaxTemp, day.MinTemp, day.Precip)
		}
	}
}

func (a *app) alerts(args []string) {
	flags := flag.NewFlagSet("alerts", flag.ExitOnError)
	refresh := flags.Bool("refresh", false, "skip the local alerts cache")
	_ = flags.Parse(args)

	loc := a.state.Location()
	if !loc.Active() {
		fmt.Fprintln(os.Stderr, "no active location; run set-location first")
		os.Exit(1)
	}

	if *refresh {
		a.fetcher.FetchAlerts(a.ctx, loc)
	} else {
		a.fetcher.LoadAlerts(a.ctx, loc)
	}

	alerts, alertsErr := a.fetcher.Alerts()
	if alertsErr != "" {
		fmt.Fprintf(os.Stderr, "alerts unavailable: %s\n", alertsErr)
		os.Exit(1)
	}
	if alerts == nil || len(alerts.Alerts) == 0 {
		fmt.Printf("No active alerts for %s\n", loc)
		return
	}

	fmt.Printf("Active alerts for %s:\n", loc)
	for _, alert := range alerts.Alerts {
		fmt.Printf("  [%s] %s\n", alert.Severity, alert.Title)
		if alert.EffectiveLocal != "" {
			fmt.Printf("      effective %s", alert.EffectiveLocal)
			if alert.ExpiresLocal != "" {
				fmt.Printf(" until %s", alert.ExpiresLocal)
			}
			fmt.Println()
		}
	}
}

func metric(label, format string, args ...interface{}) {
	fmt.Printf("  %-14s "+format+"\n", append([]interface{}{label}, args...)...)
}

func printUsage() {
	fmt.Println(`weatherupdate dashboard - terminal client for the weather API

USAGE:
  dashboard <command> [options]

COMMANDS:
  login <token>   Exchange the shared access token for a session
  logout          Clear the session
  status          Show session and active location
  show            Show current conditions, 3-day forecast and history
                  (--refresh to bypass caches, --forecast N / --history N
                  to pin the metric view to one day)
  alerts          Show active weather alerts (--refresh to refetch)
  set-location    Set the active city and country
  help            Show this help message

ENVIRONMENT:
  API_URL               Backend API URL (default: http://localhost:8080)
  WEATHERUPDATE_CACHE   Local cache path (default: ~/.weatherupdate/cache.db)`)
}
