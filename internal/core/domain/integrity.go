package domain

// Static bounds for a submitted session.
const (
	MaxScore    = 1_000_000
	MaxWave     = 1_000
	MaxDuration = 86_400 // 24h in seconds
)

// Plausibility policy: a session reaching wave w must score within
// [w*MinPointsPerWave, w*MaxPointsPerWave], both ends inclusive. This is a
// tunable heuristic, not proof that a session is legitimate.
const (
	MinPointsPerWave = 50
	MaxPointsPerWave = 500
)

// ValidateSession checks a candidate session against the static range bounds
// and the score/wave plausibility heuristic. It performs no I/O and is
// deterministic in its three inputs.
//
// Range checks run in field order (score, waveReached, duration) and the first
// failure is returned as a *RangeError. A plausibility failure is returned as
// an *IntegrityError.
func ValidateSession(score, waveReached, duration int) error {
	if err := checkRange("score", score, 0, MaxScore); err != nil {
		return err
	}
	if err := checkRange("waveReached", waveReached, 0, MaxWave); err != nil {
		return err
	}
	if err := checkRange("duration", duration, 0, MaxDuration); err != nil {
		return err
	}

	minScore := waveReached * MinPointsPerWave
	maxScore := waveReached * MaxPointsPerWave
	if score < minScore || score > maxScore {
		return &IntegrityError{Score: score, MinScore: minScore, MaxScore: maxScore}
	}
	return nil
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &RangeError{Field: field, Min: lo, Max: hi, Value: v}
	}
	return nil
}
