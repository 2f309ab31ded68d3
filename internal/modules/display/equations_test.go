package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/dividend-calculator/internal/modules/valuation"
)

func TestBuildEquation_Valid(t *testing.T) {
	in := fixtureInput()
	report := reportFor(in)

	tests := []struct {
		model       valuation.Model
		notation    string
		substituted string
		result      string
		aria        string
		breakdown   []BreakdownTerm
	}{
		{
			model:       valuation.ModelConstant,
			notation:    "P",
			substituted: "P = USD 2.00 / 12.0%",
			result:      "= USD 16.67",
			aria:        "Constant Dividend Model equation: Price equals 2 dollars divided by 12.0 percent (i.e. 0.1200) which equals 16.67 dollars",
			breakdown:   []BreakdownTerm{},
		},
		{
			model:       valuation.ModelGrowth,
			notation:    "PV_t",
			substituted: "PV_t = USD 2.08 / (12.0% − 4.0%)",
			result:      "= USD 26.00",
			aria:        "Constant Growth Model equation: Present value at time t equals dividend one of 2.08 dollars divided by required return 12.0 percent minus growth rate 4.0 percent, which equals 26.00 dollars",
			breakdown:   []BreakdownTerm{},
		},
		{
			model:       valuation.ModelChanging,
			notation:    "PV_0",
			substituted: "PV_0 = Σ[t=1..3] USD 2.00(1 + 20.0%)^t / (1 + 12.0%)^t + Σ[t=4..∞] D_4(1 + 4.0%)^t / (1 + 12.0%)^t",
			result:      "= USD 38.88",
			aria:        "Changing Growth Model equation: Present value equals 6.90 dollars from high growth period plus 31.98 dollars from terminal value, which equals 38.88 dollars",
			breakdown: []BreakdownTerm{
				{Label: "high growth", Amount: "USD 6.90"},
				{Label: "terminal", Amount: "USD 31.98"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.model), func(t *testing.T) {
			result, _ := report.Result(tt.model)
			eq, err := BuildEquation(tt.model, in, result, codeFormatter)
			require.NoError(t, err)

			assert.Equal(t, tt.model, eq.Model)
			assert.Equal(t, tt.model.Title(), eq.Title)
			assert.Equal(t, tt.notation, eq.Notation)
			assert.NotEmpty(t, eq.Symbolic)
			assert.Equal(t, tt.substituted, eq.Substituted)
			assert.Equal(t, tt.result, eq.Result)
			assert.True(t, eq.Valid)
			assert.Empty(t, eq.Constraint)
			assert.Equal(t, tt.aria, eq.AriaLabel)
			assert.Equal(t, tt.breakdown, eq.Breakdown)
		})
	}
}

func TestBuildEquation_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		model      valuation.Model
		in         valuation.ValuationInput
		constraint string
		aria       string
	}{
		{
			name:       "zero required return",
			model:      valuation.ModelConstant,
			in:         valuation.ValuationInput{D0: 2, RequiredReturn: 0},
			constraint: "r must be non-zero",
			aria:       "Constant Dividend Model equation: Invalid result. Required return must be non-zero",
		},
		{
			name:       "growth equals return",
			model:      valuation.ModelGrowth,
			in:         valuation.ValuationInput{D0: 2, RequiredReturn: 8, ConstantGrowth: 8},
			constraint: "g must be < r",
			aria:       "Constant Growth Model equation: Invalid result. Growth rate 8 percent must be less than required return 8 percent",
		},
		{
			name:       "long growth above return",
			model:      valuation.ModelChanging,
			in:         valuation.ValuationInput{D0: 2, RequiredReturn: 8, ShortGrowth: 20, LongGrowth: 9.5, ShortYears: 3},
			constraint: "gl must be < r",
			aria:       "Changing Growth Model equation: Invalid result. Long-term growth rate 9.5 percent must be less than required return 8 percent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := valuation.Evaluate(tt.model, tt.in)
			require.NoError(t, err)

			eq, err := BuildEquation(tt.model, tt.in, result, codeFormatter)
			require.NoError(t, err)

			assert.False(t, eq.Valid)
			assert.Equal(t, InvalidText, eq.Result)
			assert.Equal(t, tt.constraint, eq.Constraint)
			assert.Equal(t, tt.aria, eq.AriaLabel)
			assert.Empty(t, eq.Breakdown)
		})
	}
}

func TestBuildEquation_UnknownModel(t *testing.T) {
	_, err := BuildEquation("three-stage", fixtureInput(), valuation.ValuationResult{}, codeFormatter)
	assert.ErrorIs(t, err, valuation.ErrUnknownModel)
}

func TestBuildEquations(t *testing.T) {
	equations := BuildEquations(reportFor(fixtureInput()), codeFormatter)

	require.Len(t, equations, 3)
	assert.Equal(t, valuation.ModelConstant, equations[0].Model)
	assert.Equal(t, valuation.ModelGrowth, equations[1].Model)
	assert.Equal(t, valuation.ModelChanging, equations[2].Model)
}
