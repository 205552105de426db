package domain

import "math"

// Empirical constants of the hydraulic estimator. Their magnitudes have no
// documented derivation and are kept exactly as calibrated.
const (
	BaseInfiltrationRate      = 0.1   // m/hour
	InfiltrationPerVegetation = 0.004 // per vegetation percent
	InfiltrationPerUnbuilt    = 0.003 // per percent not under construction
	BaseDrainageCapacity      = 20.0  // m³/hour
	DrainagePerVegetation     = 3.0   // m³/hour at 100% vegetation
	DrainagePerConstruction   = 2.0   // m³/hour lost at 100% construction
	BaseEvaporationRate       = 0.01  // m³/hour/m²
	EvaporationPerVegetation  = 0.0005
	EvaporationPerBarren      = 0.001
	landCoverTotal            = 100.0
	landCoverSumTolerance     = 1e-9
)

// LandCover splits a catchment into vegetation, construction, and barren
// land, each as a percentage.
type LandCover struct {
	VegetationPercent   float64 `json:"vegetation_percent"`
	ConstructionPercent float64 `json:"construction_percent"`
	BarrenPercent       float64 `json:"barren_percent"`
}

// Validate checks each percentage is in [0,100] and that they sum to 100.
func (c LandCover) Validate() error {
	if err := checkRange("vegetation_percent", c.VegetationPercent, 0, 100); err != nil {
		return err
	}
	if err := checkRange("construction_percent", c.ConstructionPercent, 0, 100); err != nil {
		return err
	}
	if err := checkRange("barren_percent", c.BarrenPercent, 0, 100); err != nil {
		return err
	}
	sum := c.VegetationPercent + c.ConstructionPercent + c.BarrenPercent
	if math.Abs(sum-landCoverTotal) > landCoverSumTolerance {
		return invalid("land_cover", "percentages must sum to 100, got %g", sum)
	}
	return nil
}

// HydraulicParams are the physical rates derived from land cover.
type HydraulicParams struct {
	InfiltrationRate float64 `json:"infiltration_rate"` // m/hour
	DrainageCapacity float64 `json:"drainage_capacity"` // m³/hour
	EvaporationRate  float64 `json:"evaporation_rate"`  // m³/hour/m²
}

// Validate checks that every rate is finite and non-negative.
func (p HydraulicParams) Validate() error {
	if err := checkNonNegative("infiltration_rate", p.InfiltrationRate); err != nil {
		return err
	}
	if err := checkNonNegative("drainage_capacity", p.DrainageCapacity); err != nil {
		return err
	}
	return checkNonNegative("evaporation_rate", p.EvaporationRate)
}

// EstimateHydraulics derives infiltration, drainage, and evaporation rates
// from land cover. Every rate is floored at zero. It does not validate the
// cover; the formulas assume the percentages sum to 100, so callers should
// run LandCover.Validate first.
func EstimateHydraulics(c LandCover) HydraulicParams {
	vegetationModifier := math.Max(0, InfiltrationPerVegetation*c.VegetationPercent)
	constructionModifier := math.Max(0, InfiltrationPerUnbuilt*(landCoverTotal-c.ConstructionPercent))
	infiltration := BaseInfiltrationRate + vegetationModifier - constructionModifier

	vegetationImpact := math.Max(0, DrainagePerVegetation*c.VegetationPercent/100)
	constructionImpact := math.Max(0, DrainagePerConstruction*c.ConstructionPercent/100)
	drainage := BaseDrainageCapacity + vegetationImpact - constructionImpact

	vegetationEffect := math.Max(0, EvaporationPerVegetation*c.VegetationPercent)
	barrenEffect := math.Max(0, EvaporationPerBarren*c.BarrenPercent)
	evaporation := BaseEvaporationRate + vegetationEffect + barrenEffect

	return HydraulicParams{
		InfiltrationRate: math.Max(0, infiltration),
		DrainageCapacity: math.Max(0, drainage),
		EvaporationRate:  math.Max(0, evaporation),
	}
}
