// Package domain is the environmental-risk scoring bank: pure, deterministic
// functions that turn a handful of numbers into a risk category, a score, or
// a physical time estimate. Nothing here performs I/O or keeps state, so
// every function is safe to call from any goroutine and returns bit-identical
// output for identical input.
//
// # Hydraulics
//
// Land cover (vegetation, construction, barren; percentages summing to 100)
// maps to three rates:
//
//	infiltration = max(0, 0.1 + 0.004*veg - 0.003*(100-construction))   m/hour
//	drainage     = max(0, 20 + 3*veg/100 - 2*construction/100)          m³/hour
//	evaporation  = max(0, 0.01 + 0.0005*veg + 0.001*barren)             m³/hour/m²
//
// The constants are empirical and undocumented. They are kept
// exactly so results stay comparable with earlier reports.
//
// # Flood and drainage time
//
//	volume   = area * depth
//	flood    = volume / (rainfall * infiltration)
//	drainage = volume / (drainage + evaporation*area)
//
// A zero denominator is an [UndefinedRiskError], never +Inf or NaN.
//
// # Classifiers
//
// All three-way classifiers return [RiskLow], [RiskModerate], or [RiskHigh]:
//
//	Water scarcity (rainfall sum):  >50mm Low  | >25mm Moderate | else High
//	Heat island (mean temp):        <25°C Low  | <30°C Moderate | else High
//	Forecast flood (rainfall sum):  >100mm High | >50mm Moderate | else Low
//	Air pollution (mean AQI 1-5):   <2 Low     | <4 Moderate    | else High
//	Flood time (hours):             <8 Low     | <16 Moderate   | else High
//	Composite (mean of 0-10 factors / 10): <0.33 Low | <0.66 Moderate | else High
//
// The composite classifier is a placeholder heuristic with equal weights.
//
// # Regression
//
// Externally trained flood/drainage regressors consume a fixed feature order
// ([FeatureOrder]) after standard scaling. Training and artifact formats
// live outside this package; see the model package for loading.
//
// # Errors
//
// Failures wrap one of [ErrInvalidInput], [ErrUndefinedRisk], or
// [ErrModelUnavailable]. None are retried: the functions are deterministic.
package domain
