package domain

import (
	"errors"
	"testing"
)

func TestValidateSession_AcceptsPlausibleSession(t *testing.T) {
	if err := ValidateSession(300, 5, 120); err != nil {
		t.Fatalf("expected session to be accepted, got %v", err)
	}
}

func TestValidateSession_RejectsLowScore(t *testing.T) {
	err := ValidateSession(10, 5, 120)
	if !errors.Is(err, ErrIntegrityViolation) {
		t.Fatalf("expected ErrIntegrityViolation, got %v", err)
	}

	var ie *IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *IntegrityError, got %T", err)
	}
	if ie.MinScore != 250 || ie.MaxScore != 2500 {
		t.Fatalf("unexpected bounds: [%d, %d]", ie.MinScore, ie.MaxScore)
	}
}

func TestValidateSession_ZeroWave(t *testing.T) {
	if err := ValidateSession(0, 0, 0); err != nil {
		t.Fatalf("expected empty session to be accepted, got %v", err)
	}
	if err := ValidateSession(1, 0, 10); !errors.Is(err, ErrIntegrityViolation) {
		t.Fatalf("expected ErrIntegrityViolation for score on wave 0, got %v", err)
	}
}

// Every wave in range: the inclusive bounds are accepted and one point past
// either bound is rejected.
func TestValidateSession_BoundsForEveryWave(t *testing.T) {
	for w := 0; w <= MaxWave; w++ {
		lo, hi := w*MinPointsPerWave, w*MaxPointsPerWave

		if err := ValidateSession(lo, w, 60); err != nil {
			t.Fatalf("wave %d: lower bound %d rejected: %v", w, lo, err)
		}
		if err := ValidateSession(hi, w, 60); err != nil {
			t.Fatalf("wave %d: upper bound %d rejected: %v", w, hi, err)
		}
		if lo > 0 {
			if err := ValidateSession(lo-1, w, 60); !errors.Is(err, ErrIntegrityViolation) {
				t.Fatalf("wave %d: score %d should be rejected, got %v", w, lo-1, err)
			}
		}
		if err := ValidateSession(hi+1, w, 60); err == nil {
			t.Fatalf("wave %d: score %d should be rejected", w, hi+1)
		}
	}
}

func TestValidateSession_RangeErrors(t *testing.T) {
	cases := []struct {
		name     string
		score    int
		wave     int
		duration int
		field    string
	}{
		{"negative score", -1, 0, 0, "score"},
		{"score too high", MaxScore + 1, MaxWave, 0, "score"},
		{"negative wave", 0, -1, 0, "waveReached"},
		{"wave too high", 500_000, MaxWave + 1, 0, "waveReached"},
		{"negative duration", 0, 0, -1, "duration"},
		{"duration too long", 0, 0, MaxDuration + 1, "duration"},
		{"first field wins", -5, -5, -5, "score"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSession(tc.score, tc.wave, tc.duration)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var re *RangeError
			if !errors.As(err, &re) {
				t.Fatalf("expected *RangeError, got %T", err)
			}
			if re.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, re.Field)
			}
		})
	}
}

func TestValidateSession_MaxValues(t *testing.T) {
	// wave 1000 caps plausible scores at 500k, well inside the score range.
	if err := ValidateSession(500_000, MaxWave, MaxDuration); err != nil {
		t.Fatalf("expected max plausible session to be accepted, got %v", err)
	}
}
