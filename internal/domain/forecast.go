package domain

import "time"

// ForecastPoint is one step of a multi-day weather forecast.
type ForecastPoint struct {
	Time            time.Time `json:"time"`
	TempC           float64   `json:"temp_c"`
	HumidityPercent float64   `json:"humidity_percent"`
	WindSpeedMS     float64   `json:"wind_speed_ms"`
	RainfallMM      float64   `json:"rainfall_mm"`
	Description     string    `json:"description,omitempty"`
}

// ForecastSummary aggregates a forecast and classifies it.
type ForecastSummary struct {
	Points             int       `json:"points"`
	RainfallSumMM      float64   `json:"rainfall_sum_mm"`
	AvgTempC           float64   `json:"avg_temp_c"`
	AvgHumidityPercent float64   `json:"avg_humidity_percent"`
	WaterScarcity      RiskLevel `json:"water_scarcity"`
	HeatIsland         RiskLevel `json:"heat_island"`
	FloodRisk          RiskLevel `json:"flood_risk"`
	EnergyKWh          float64   `json:"energy_kwh"`
	PredictedAQI       int       `json:"predicted_aqi"`
}

// SummarizeForecast totals rainfall and averages temperature and humidity
// over the forecast, then applies the water-scarcity, heat-island, and
// forecast flood classifiers. Rainfall feeds both scarcity and flood risk.
func SummarizeForecast(points []ForecastPoint) (ForecastSummary, error) {
	if len(points) == 0 {
		return ForecastSummary{}, invalid("forecast", "at least one forecast point is required")
	}

	var rain, temp, humidity float64
	for _, p := range points {
		if err := checkNonNegative("rainfall_mm", p.RainfallMM); err != nil {
			return ForecastSummary{}, err
		}
		if err := checkFinite("temp_c", p.TempC); err != nil {
			return ForecastSummary{}, err
		}
		if err := checkRange("humidity_percent", p.HumidityPercent, 0, 100); err != nil {
			return ForecastSummary{}, err
		}
		rain += p.RainfallMM
		temp += p.TempC
		humidity += p.HumidityPercent
	}

	n := float64(len(points))
	avgTemp := temp / n
	avgHumidity := humidity / n

	return ForecastSummary{
		Points:             len(points),
		RainfallSumMM:      rain,
		AvgTempC:           avgTemp,
		AvgHumidityPercent: avgHumidity,
		WaterScarcity:      ClassifyWaterScarcity(rain),
		HeatIsland:         ClassifyHeatIsland(avgTemp),
		FloodRisk:          ClassifyForecastFloodRisk(rain),
		EnergyKWh:          EstimateEnergyConsumption(avgTemp),
		PredictedAQI:       PredictAQI(avgTemp, avgHumidity),
	}, nil
}
