// Package projection derives forward-looking return estimates from the
// historical metric observations of a single product. It is a pure
// computation over the observation slice handed to it: no storage access,
// no randomness, identical input always yields identical output.
package projection

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
)

// DefaultHorizon is the number of trailing observations used when the
// caller does not request a specific window.
const DefaultHorizon = 12

// RiskNoteInsufficientHistory flags a projection computed from fewer than
// two usable observations: the return is pinned to zero.
const RiskNoteInsufficientHistory = "insufficient-history"

// Observation is one dated metric value for the product under simulation.
// All observations passed to Project must share one metric type.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Result is the derived projection. It is never persisted.
type Result struct {
	Principal      decimal.Decimal `json:"principal"`
	ProjectedValue decimal.Decimal `json:"projected_value"`
	// MeanReturn is the mean period-over-period return across the basis
	// window, applied to the principal exactly once.
	MeanReturn float64 `json:"mean_return"`
	// Risk is the sample standard deviation of the period returns. Nil when
	// fewer than two return samples exist, since it is undefined there.
	Risk *float64 `json:"risk,omitempty"`
	// BasisWindow is the number of observations the projection used.
	BasisWindow int    `json:"basis_window"`
	RiskNote    string `json:"risk_note,omitempty"`
}

// Project estimates the value of principal after one period, based on the
// most recent horizon observations. A horizon of zero or less selects
// DefaultHorizon;
// fewer available observations than the horizon means all are used.
//
// Returns INVALID_INPUT for a non-positive principal and INSUFFICIENT_DATA
// when no observations exist, so callers can render a "not enough data"
// state instead of crashing.
func Project(principal decimal.Decimal, observations []Observation, horizon int) (*Result, error) {
	if !principal.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "principal must be greater than zero")
	}
	if len(observations) == 0 {
		return nil, apperrors.ErrInsufficientData
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	window := newestFirst(observations)
	if len(window) > horizon {
		window = window[:horizon]
	}

	returns := periodReturns(window)

	result := &Result{
		Principal:   principal,
		BasisWindow: len(window),
	}

	if len(returns) == 0 {
		// One observation, or every pair was unusable: no basis for a
		// return estimate, so project flat and flag it.
		result.MeanReturn = 0
		result.RiskNote = RiskNoteInsufficientHistory
	} else {
		result.MeanReturn = mean(returns)
	}

	if len(returns) >= 2 {
		risk := sampleStdDev(returns, result.MeanReturn)
		result.Risk = &risk
	}

	result.ProjectedValue = principal.Mul(decimal.NewFromFloat(1 + result.MeanReturn))
	return result, nil
}

// newestFirst returns a copy of the observations sorted by date descending.
// The sort is stable so duplicate dates keep their input order.
func newestFirst(observations []Observation) []Observation {
	sorted := make([]Observation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// periodReturns computes the return between each pair of consecutive
// observations in a newest-first window. Pairs whose older value is zero
// are skipped: the period return is undefined there.
func periodReturns(window []Observation) []float64 {
	returns := make([]float64, 0, len(window)-1)
	for i := len(window) - 1; i > 0; i-- {
		older := window[i].Value
		newer := window[i-1].Value
		if older == 0 {
			continue
		}
		returns = append(returns, (newer-older)/older)
	}
	return returns
}

func mean(samples []float64) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// sampleStdDev computes the sample (n-1) standard deviation. Callers must
// guarantee len(samples) >= 2.
func sampleStdDev(samples []float64, mean float64) float64 {
	sum := 0.0
	for _, s := range samples {
		d := s - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(samples)-1))
}
