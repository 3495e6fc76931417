package projection

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/testutil"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func obs(values ...float64) []Observation {
	result := make([]Observation, len(values))
	for i, v := range values {
		result[i] = Observation{Date: day(i), Value: v}
	}
	return result
}

func TestProject(t *testing.T) {
	t.Run("steady_growth", func(t *testing.T) {
		// 100 -> 110 -> 121: period returns [0.10, 0.10], mean 0.10.
		result, err := Project(decimal.NewFromInt(1000), obs(100, 110, 121), 12)
		testutil.AssertNoError(t, err)

		if !result.ProjectedValue.Equal(decimal.NewFromInt(1100)) {
			t.Errorf("expected projected value 1100, got %s", result.ProjectedValue)
		}
		if result.MeanReturn != 0.1 {
			t.Errorf("expected mean return 0.1, got %v", result.MeanReturn)
		}
		if result.Risk == nil {
			t.Fatal("expected risk to be set with two return samples")
		}
		if *result.Risk != 0 {
			t.Errorf("expected zero dispersion for constant returns, got %v", *result.Risk)
		}
		if result.BasisWindow != 3 {
			t.Errorf("expected basis window 3, got %d", result.BasisWindow)
		}
		if result.RiskNote != "" {
			t.Errorf("expected no risk note, got %q", result.RiskNote)
		}
	})

	t.Run("single_observation", func(t *testing.T) {
		result, err := Project(decimal.NewFromInt(500), obs(104.2), 12)
		testutil.AssertNoError(t, err)

		if result.MeanReturn != 0 {
			t.Errorf("expected zero return with one observation, got %v", result.MeanReturn)
		}
		if !result.ProjectedValue.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected flat projection 500, got %s", result.ProjectedValue)
		}
		if result.Risk != nil {
			t.Errorf("expected nil risk with one observation, got %v", *result.Risk)
		}
		if result.RiskNote != RiskNoteInsufficientHistory {
			t.Errorf("expected risk note %q, got %q", RiskNoteInsufficientHistory, result.RiskNote)
		}
	})

	t.Run("no_observations", func(t *testing.T) {
		_, err := Project(decimal.NewFromInt(1000), nil, 12)
		testutil.AssertAppError(t, err, "INSUFFICIENT_DATA")
	})

	t.Run("non_positive_principal", func(t *testing.T) {
		_, err := Project(decimal.Zero, obs(100, 110), 12)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = Project(decimal.NewFromInt(-50), obs(100, 110), 12)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("two_observations_risk_undefined", func(t *testing.T) {
		// One return sample: mean is defined, dispersion is not.
		result, err := Project(decimal.NewFromInt(1000), obs(100, 105), 12)
		testutil.AssertNoError(t, err)

		if result.MeanReturn != 0.05 {
			t.Errorf("expected mean return 0.05, got %v", result.MeanReturn)
		}
		if result.Risk != nil {
			t.Errorf("expected nil risk with a single return sample, got %v", *result.Risk)
		}
	})

	t.Run("horizon_trims_oldest", func(t *testing.T) {
		// Horizon 2 keeps only the two newest observations; the early crash
		// from 200 to 100 must not influence the estimate.
		result, err := Project(decimal.NewFromInt(1000), obs(200, 100, 110), 2)
		testutil.AssertNoError(t, err)

		if result.BasisWindow != 2 {
			t.Errorf("expected basis window 2, got %d", result.BasisWindow)
		}
		if result.MeanReturn != 0.1 {
			t.Errorf("expected mean return 0.1, got %v", result.MeanReturn)
		}
	})

	t.Run("default_horizon_applied", func(t *testing.T) {
		values := make([]float64, 20)
		for i := range values {
			values[i] = 100 + float64(i)
		}
		result, err := Project(decimal.NewFromInt(1000), obs(values...), 0)
		testutil.AssertNoError(t, err)

		if result.BasisWindow != DefaultHorizon {
			t.Errorf("expected basis window %d, got %d", DefaultHorizon, result.BasisWindow)
		}
	})

	t.Run("unsorted_input", func(t *testing.T) {
		shuffled := []Observation{
			{Date: day(2), Value: 121},
			{Date: day(0), Value: 100},
			{Date: day(1), Value: 110},
		}
		result, err := Project(decimal.NewFromInt(1000), shuffled, 12)
		testutil.AssertNoError(t, err)

		if !result.ProjectedValue.Equal(decimal.NewFromInt(1100)) {
			t.Errorf("expected projected value 1100, got %s", result.ProjectedValue)
		}
	})

	t.Run("zero_valued_observation_skipped", func(t *testing.T) {
		// The pair starting from a zero value has no defined return; with no
		// other pairs the projection degrades to insufficient history.
		result, err := Project(decimal.NewFromInt(1000), obs(0, 110), 12)
		testutil.AssertNoError(t, err)

		if result.MeanReturn != 0 {
			t.Errorf("expected zero return, got %v", result.MeanReturn)
		}
		if result.RiskNote != RiskNoteInsufficientHistory {
			t.Errorf("expected risk note %q, got %q", RiskNoteInsufficientHistory, result.RiskNote)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		input := obs(100, 103, 99, 108, 112)
		first, err := Project(decimal.NewFromInt(2500), input, 4)
		testutil.AssertNoError(t, err)
		second, err := Project(decimal.NewFromInt(2500), input, 4)
		testutil.AssertNoError(t, err)

		if !first.ProjectedValue.Equal(second.ProjectedValue) || first.MeanReturn != second.MeanReturn {
			t.Error("expected identical results for identical input")
		}
	})
}
