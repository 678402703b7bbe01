package weatherbit

// Typed shapes of the Weatherbit v2.0 responses consumed by the dashboard.
// The proxy relays upstream bodies untouched; these types exist so the
// client parses responses once at the boundary and treats the result as an
// immutable value from then on.

type Condition struct {
	Icon        string `json:"icon"`
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// CurrentObservation is one observation in a /current response.
type CurrentObservation struct {
	CityName     string    `json:"city_name"`
	CountryCode  string    `json:"country_code"`
	StateCode    string    `json:"state_code,omitempty"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	Timezone     string    `json:"timezone"`
	Station      string    `json:"station,omitempty"`
	ObTime       string    `json:"ob_time"`
	Datetime     string    `json:"datetime"`
	TS           int64     `json:"ts"`
	Temp         float64   `json:"temp"`
	AppTemp      float64   `json:"app_temp"`
	RH           float64   `json:"rh"`
	Dewpt        float64   `json:"dewpt"`
	Clouds       float64   `json:"clouds"`
	Pres         float64   `json:"pres"`
	SLP          float64   `json:"slp,omitempty"`
	Vis          float64   `json:"vis"`
	Precip       float64   `json:"precip"`
	UV           float64   `json:"uv"`
	AQI          float64   `json:"aqi,omitempty"`
	WindSpd      float64   `json:"wind_spd"`
	Gust         float64   `json:"gust,omitempty"`
	WindDir      float64   `json:"wind_dir"`
	WindCdir     string    `json:"wind_cdir"`
	WindCdirFull string    `json:"wind_cdir_full"`
	Pod          string    `json:"pod"`
	Sunrise      string    `json:"sunrise"`
	Sunset       string    `json:"sunset"`
	SolarRad     float64   `json:"solar_rad,omitempty"`
	Weather      Condition `json:"weather"`
}

type CurrentWeatherResponse struct {
	Data  []CurrentObservation `json:"data"`
	Count int                  `json:"count"`
}

// ForecastDay is one entry in a /forecast/daily response.
type ForecastDay struct {
	ValidDate    string    `json:"valid_date"`
	Datetime     string    `json:"datetime"`
	TS           int64     `json:"ts"`
	Temp         float64   `json:"temp"`
	MaxTemp      float64   `json:"max_temp"`
	MinTemp      float64   `json:"min_temp"`
	HighTemp     float64   `json:"high_temp"`
	LowTemp      float64   `json:"low_temp"`
	AppMaxTemp   float64   `json:"app_max_temp"`
	AppMinTemp   float64   `json:"app_min_temp"`
	RH           float64   `json:"rh"`
	Dewpt        float64   `json:"dewpt"`
	Pop          float64   `json:"pop"`
	Precip       float64   `json:"precip"`
	Snow         float64   `json:"snow,omitempty"`
	SnowDepth    float64   `json:"snow_depth,omitempty"`
	Pres         float64   `json:"pres"`
	SLP          float64   `json:"slp,omitempty"`
	Clouds       float64   `json:"clouds"`
	Vis          float64   `json:"vis"`
	UV           float64   `json:"uv"`
	Ozone        float64   `json:"ozone,omitempty"`
	MoonPhase    float64   `json:"moon_phase"`
	SunriseTS    int64     `json:"sunrise_ts,omitempty"`
	SunsetTS     int64     `json:"sunset_ts,omitempty"`
	MoonriseTS   int64     `json:"moonrise_ts,omitempty"`
	MoonsetTS    int64     `json:"moonset_ts,omitempty"`
	WindSpd      float64   `json:"wind_spd"`
	WindGustSpd  float64   `json:"wind_gust_spd,omitempty"`
	WindDir      float64   `json:"wind_dir"`
	WindCdir     string    `json:"wind_cdir"`
	WindCdirFull string    `json:"wind_cdir_full"`
	Weather      Condition `json:"weather"`
}

type DailyForecastResponse struct {
	CityName    string        `json:"city_name"`
	CountryCode string        `json:"country_code"`
	StateCode   string        `json:"state_code,omitempty"`
	Lat         float64       `json:"lat"`
	Lon         float64       `json:"lon"`
	Timezone    string        `json:"timezone"`
	Data        []ForecastDay `json:"data"`
}

// HistoryDay is one entry in a /history/daily response.
type HistoryDay struct {
	Datetime     string  `json:"datetime"`
	TS           int64   `json:"ts"`
	Temp         float64 `json:"temp"`
	MaxTemp      float64 `json:"max_temp"`
	MinTemp      float64 `json:"min_temp"`
	MaxTempTS    int64   `json:"max_temp_ts,omitempty"`
	MinTempTS    int64   `json:"min_temp_ts,omitempty"`
	RH           float64 `json:"rh"`
	Dewpt        float64 `json:"dewpt"`
	Precip       float64 `json:"precip"`
	Snow         float64 `json:"snow,omitempty"`
	SnowDepth    float64 `json:"snow_depth,omitempty"`
	Pres         float64 `json:"pres"`
	SLP          float64 `json:"slp,omitempty"`
	Clouds       float64 `json:"clouds,omitempty"`
	MaxUV        float64 `json:"max_uv,omitempty"`
	WindSpd      float64 `json:"wind_spd"`
	MaxWindSpd   float64 `json:"max_wind_spd,omitempty"`
	WindGustSpd  float64 `json:"wind_gust_spd,omitempty"`
	WindDir      float64 `json:"wind_dir"`
	MaxWindDir   float64 `json:"max_wind_dir,omitempty"`
	MaxWindSpdTS int64   `json:"max_wind_spd_ts,omitempty"`
}

type DailyHistoryResponse struct {
	CityName    string       `json:"city_name"`
	CountryCode string       `json:"country_code"`
	StateCode   string       `json:"state_code,omitempty"`
	StationID   string       `json:"station_id,omitempty"`
	Lat         float64      `json:"lat"`
	Lon         float64      `json:"lon"`
	Timezone    string       `json:"timezone"`
	Sources     []string     `json:"sources,omitempty"`
	Data        []HistoryDay `json:"data"`
}

// Alert is one active alert in an /alerts response.
type Alert struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Severity       string   `json:"severity"`
	Regions        []string `json:"regions"`
	URI            string   `json:"uri"`
	EffectiveUTC   string   `json:"effective_utc,omitempty"`
	EffectiveLocal string   `json:"effective_local,omitempty"`
	OnsetUTC       string   `json:"onset_utc,omitempty"`
	OnsetLocal     string   `json:"onset_local,omitempty"`
	EndsUTC        string   `json:"ends_utc,omitempty"`
	EndsLocal      string   `json:"ends_local,omitempty"`
	ExpiresUTC     string   `json:"expires_utc,omitempty"`
	ExpiresLocal   string   `json:"expires_local,omitempty"`
}

type WeatherAlertsResponse struct {
	CityName    string  `json:"city_name"`
	CountryCode string  `json:"country_code"`
	StateCode   string  `json:"state_code,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Timezone    string  `json:"timezone"`
	Alerts      []Alert `json:"alerts"`
}
