package domain

// Flood-time banding used when a flood estimate is reported as a category.
const (
	FloodTimeLowBelowHours      = 8.0
	FloodTimeModerateBelowHours = 16.0
)

// MaxForecastHours caps the length of a drain-down series.
const MaxForecastHours = 168

// FloodScenario describes the surface being flooded and the incoming rain.
type FloodScenario struct {
	AreaM2                     float64 `json:"area_m2"`
	DepthM                     float64 `json:"depth_m"`
	RainfallIntensityMmPerHour float64 `json:"rainfall_intensity_mm_per_hour"`
}

// DefaultFloodScenario is the fixed what-if scenario: a 10,000 m² area
// flooded to 0.3 m under 550 mm/hour of rain.
var DefaultFloodScenario = FloodScenario{AreaM2: 10000, DepthM: 0.3, RainfallIntensityMmPerHour: 550}

// Validate checks that all scenario quantities are finite and non-negative.
func (s FloodScenario) Validate() error {
	if err := checkNonNegative("area_m2", s.AreaM2); err != nil {
		return err
	}
	if err := checkNonNegative("depth_m", s.DepthM); err != nil {
		return err
	}
	return checkNonNegative("rainfall_intensity_mm_per_hour", s.RainfallIntensityMmPerHour)
}

// FloodEstimate is the outcome of a flood/drainage time estimation.
type FloodEstimate struct {
	Params            HydraulicParams `json:"params"`
	FloodVolumeM3     float64         `json:"flood_volume_m3"`
	FloodTimeHours    float64         `json:"flood_time_hours"`
	DrainageTimeHours float64         `json:"drainage_time_hours"`
}

// Assessment reports the estimate in the common result shape, banded on
// flood time.
func (e FloodEstimate) Assessment() Assessment {
	return Assessment{
		Category: ClassifyFloodTime(e.FloodTimeHours),
		Score:    e.FloodTimeHours,
		DerivedHours: &DerivedHours{
			Flood:    e.FloodTimeHours,
			Drainage: e.DrainageTimeHours,
		},
	}
}

// EstimateFloodDrainage computes how long the scenario takes to flood and
// how long the flood takes to drain, given hydraulic rates. A zero
// denominator in either quotient is reported as an UndefinedRiskError.
func EstimateFloodDrainage(s FloodScenario, p HydraulicParams) (FloodEstimate, error) {
	if err := s.Validate(); err != nil {
		return FloodEstimate{}, err
	}
	if err := p.Validate(); err != nil {
		return FloodEstimate{}, err
	}

	volume := s.AreaM2 * s.DepthM

	inflow := s.RainfallIntensityMmPerHour * p.InfiltrationRate
	if inflow == 0 {
		return FloodEstimate{}, &UndefinedRiskError{Quantity: "flood time"}
	}
	outflow := p.DrainageCapacity + p.EvaporationRate*s.AreaM2
	if outflow == 0 {
		return FloodEstimate{}, &UndefinedRiskError{Quantity: "drainage time"}
	}

	return FloodEstimate{
		Params:            p,
		FloodVolumeM3:     volume,
		FloodTimeHours:    volume / inflow,
		DrainageTimeHours: volume / outflow,
	}, nil
}

// SimulateLandCover validates the land cover, derives its hydraulic rates,
// and estimates flood and drainage times for the scenario.
func SimulateLandCover(s FloodScenario, c LandCover) (FloodEstimate, error) {
	if err := c.Validate(); err != nil {
		return FloodEstimate{}, err
	}
	return EstimateFloodDrainage(s, EstimateHydraulics(c))
}

// FloodDrainForecast projects flood level over the next hours as a linear
// drain-down: max(0, flood - i*(flood/drain)) for i in [0, hours). A scenario
// that never floods yields an all-zero series.
func FloodDrainForecast(floodHours, drainHours float64, hours int) ([]float64, error) {
	if err := checkNonNegative("flood_hours", floodHours); err != nil {
		return nil, err
	}
	if err := checkNonNegative("drain_hours", drainHours); err != nil {
		return nil, err
	}
	if hours < 0 || hours > MaxForecastHours {
		return nil, invalid("hours", "must be in [0, %d], got %d", MaxForecastHours, hours)
	}

	out := make([]float64, hours)
	if floodHours == 0 {
		return out, nil
	}
	if drainHours == 0 {
		return nil, &UndefinedRiskError{Quantity: "drain-down rate"}
	}

	rate := floodHours / drainHours
	for i := range out {
		level := floodHours - float64(i)*rate
		if level < 0 {
			level = 0
		}
		out[i] = level
	}
	return out, nil
}
