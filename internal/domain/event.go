package domain

import (
	"context"
	"time"
)

// RawForecast is the JSON the upstream collector publishes per location: the
// OpenWeather 5-day/3-hour forecast body, forwarded unchanged.
type RawForecast struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		Coord   struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	} `json:"city"`
	List []RawForecastItem `json:"list"`
}

// RawForecastItem is one 3-hour step of a RawForecast.
type RawForecastItem struct {
	Dt    int64  `json:"dt"`
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []WeatherCondition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		ThreeHour float64 `json:"3h"`
	} `json:"rain"`
}

// WeatherCondition is a provider condition group, e.g. "Rain" / "light rain".
type WeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ForecastAssessment is a location's forecast summary as published to the
// sink topic.
type ForecastAssessment struct {
	ID         string          `json:"id"`
	Location   string          `json:"location"`
	Country    string          `json:"country,omitempty"`
	Geo        Point           `json:"geo"`
	Summary    ForecastSummary `json:"summary"`
	PeriodFrom time.Time       `json:"period_from"`
	PeriodTo   time.Time       `json:"period_to"`
	TimeBucket string          `json:"time_bucket,omitempty"`
	AssessedAt time.Time       `json:"assessed_at"`

	RawPayload []byte `json:"-"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
