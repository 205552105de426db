package domain

import "sort"

// Composite heuristic bounds. Each factor is a slider value in [0,10].
const (
	CompositeFactorMax     = 10.0
	CompositeLowBelow      = 0.33
	CompositeModerateBelow = 0.66
)

// ClassifyComposite averages named factors normalized to [0,10] into a
// probability in [0,1] and bands it Low/Moderate/High.
//
// This is a placeholder heuristic, not a trained model: every factor carries
// equal weight and there is no calibration.
func ClassifyComposite(factors map[string]float64) (Assessment, error) {
	if len(factors) == 0 {
		return Assessment{}, invalid("factors", "at least one factor is required")
	}

	names := make([]string, 0, len(factors))
	for name := range factors {
		names = append(names, name)
	}
	sort.Strings(names)

	var sum float64
	for _, name := range names {
		v := factors[name]
		if err := checkRange(name, v, 0, CompositeFactorMax); err != nil {
			return Assessment{}, err
		}
		sum += v
	}

	p := sum / (float64(len(factors)) * CompositeFactorMax)
	return Assessment{Category: classifyComposite(p), Score: p}, nil
}

func classifyComposite(p float64) RiskLevel {
	switch {
	case p < CompositeLowBelow:
		return RiskLow
	case p < CompositeModerateBelow:
		return RiskModerate
	default:
		return RiskHigh
	}
}
