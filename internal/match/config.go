package match

// Config holds the thresholds that gate suggestion, auto-acceptance and
// confidence tiering. Values are scores in [0,1].
type Config struct {
	MinSuggestionThreshold    float64 // Below this no suggestion is made at all
	AutoMatchThreshold        float64 // At or above this a suggestion is accepted (inclusive)
	MediumConfidenceThreshold float64 // Floor of the medium confidence tier
	HighConfidenceThreshold   float64 // Floor of the high confidence tier
}

// DefaultConfig returns the default matching thresholds.
func DefaultConfig() Config {
	return Config{
		MinSuggestionThreshold:    0.30,
		AutoMatchThreshold:        0.60,
		MediumConfidenceThreshold: 0.75,
		HighConfidenceThreshold:   0.90,
	}
}
