package fastqStats

// Classification grades a run by its mean per-read quality.
type Classification int

const (
	Poor Classification = iota
	Good
	Excellent
)

const (
	excellentQuality = 30
	goodQuality      = 20
)

// Classify returns Excellent for mean >= 30, Good for mean >= 20, else Poor.
func Classify(qualityMean float64) Classification {
	switch {
	case qualityMean >= excellentQuality:
		return Excellent
	case qualityMean >= goodQuality:
		return Good
	default:
		return Poor
	}
}

func (c Classification) String() string {
	switch c {
	case Excellent:
		return "Excellent"
	case Good:
		return "Good"
	default:
		return "Poor"
	}
}
