package domain

// Thresholds of the single-scalar classifiers. Comparisons are strict, so a
// value equal to a threshold never satisfies it: 50 mm of rain is
// Moderate scarcity and 25 mm High, 25°C is a Moderate heat island and 30°C
// High, and a forecast rainfall sum of exactly 100 mm is Moderate flood risk.
const (
	WaterScarcityLowAboveMM      = 50.0
	WaterScarcityModerateAboveMM = 25.0

	HeatIslandLowBelowC      = 25.0
	HeatIslandModerateBelowC = 30.0

	ForecastFloodHighAboveMM     = 100.0
	ForecastFloodModerateAboveMM = 50.0

	AirPollutionLowBelowAQI      = 2.0
	AirPollutionModerateBelowAQI = 4.0

	SDGAlignmentLowBelow      = 50.0
	SDGAlignmentModerateBelow = 75.0
)

// ClassifyWaterScarcity bands a forecast rainfall sum. More rain means less
// scarcity risk.
func ClassifyWaterScarcity(rainfallSumMM float64) RiskLevel {
	switch {
	case rainfallSumMM > WaterScarcityLowAboveMM:
		return RiskLow
	case rainfallSumMM > WaterScarcityModerateAboveMM:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// ClassifyHeatIsland bands a mean forecast temperature.
func ClassifyHeatIsland(avgTempC float64) RiskLevel {
	switch {
	case avgTempC < HeatIslandLowBelowC:
		return RiskLow
	case avgTempC < HeatIslandModerateBelowC:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// ClassifyForecastFloodRisk bands a forecast rainfall sum for flooding.
func ClassifyForecastFloodRisk(rainfallMM float64) RiskLevel {
	switch {
	case rainfallMM > ForecastFloodHighAboveMM:
		return RiskHigh
	case rainfallMM > ForecastFloodModerateAboveMM:
		return RiskModerate
	default:
		return RiskLow
	}
}

// ClassifyAirPollution bands a mean OpenWeather AQI index (1-5 scale).
func ClassifyAirPollution(avgAQI float64) RiskLevel {
	switch {
	case avgAQI < AirPollutionLowBelowAQI:
		return RiskLow
	case avgAQI < AirPollutionModerateBelowAQI:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// ClassifyFloodTime bands a flood time estimate in hours.
func ClassifyFloodTime(hours float64) RiskLevel {
	switch {
	case hours < FloodTimeLowBelowHours:
		return RiskLow
	case hours < FloodTimeModerateBelowHours:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// ClassifySDGAlignment bands a normalized 0-100 SDG alignment score. The
// returned level describes alignment strength, so High is the good outcome.
func ClassifySDGAlignment(score float64) RiskLevel {
	switch {
	case score < SDGAlignmentLowBelow:
		return RiskLow
	case score < SDGAlignmentModerateBelow:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// DescribeAQI names an OpenWeather AQI index. Anything above 4 is "Very Poor".
func DescribeAQI(index int) string {
	switch index {
	case 1:
		return "Good"
	case 2:
		return "Fair"
	case 3:
		return "Moderate"
	case 4:
		return "Poor"
	default:
		return "Very Poor"
	}
}
