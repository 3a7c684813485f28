package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		want    map[string]float64
		order   []string
	}{
		{
			name:    "Binary",
			formula: "NaCl",
			want:    map[string]float64{"Na": 1, "Cl": 1},
			order:   []string{"Na", "Cl"},
		},
		{
			name:    "IntegerAmounts",
			formula: "Fe2O3",
			want:    map[string]float64{"Fe": 2, "O": 3},
			order:   []string{"Fe", "O"},
		},
		{
			name:    "FractionalAmounts",
			formula: "Li0.5CoO2",
			want:    map[string]float64{"Li": 0.5, "Co": 1, "O": 2},
			order:   []string{"Li", "Co", "O"},
		},
		{
			name:    "Parentheses",
			formula: "Ca3(PO4)2",
			want:    map[string]float64{"Ca": 3, "P": 2, "O": 8},
			order:   []string{"Ca", "P", "O"},
		},
		{
			name:    "NestedParentheses",
			formula: "((H2O)2)3",
			want:    map[string]float64{"H": 12, "O": 6},
			order:   []string{"H", "O"},
		},
		{
			name:    "FractionalGroupMultiplier",
			formula: "(FeO)0.5(Fe2O3)0.5",
			want:    map[string]float64{"Fe": 1.5, "O": 2},
			order:   []string{"Fe", "O"},
		},
		{
			name:    "DuplicateMentionsAccumulate",
			formula: "FeOFe",
			want:    map[string]float64{"Fe": 2, "O": 1},
			order:   []string{"Fe", "O"},
		},
		{
			name:    "SpacesTolerated",
			formula: "Na Cl",
			want:    map[string]float64{"Na": 1, "Cl": 1},
			order:   []string{"Na", "Cl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.formula)
			require.NoError(t, err)

			assert.Equal(t, tt.order, c.Elements())

			for symbol, amount := range tt.want {
				assert.InDelta(t, amount, c.Amount(symbol), 1e-12, "amount of %s", symbol)
			}

			assert.Equal(t, len(tt.want), c.Len())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		formula string
	}{
		{name: "Empty", formula: ""},
		{name: "Blank", formula: "   "},
		{name: "UnknownElement", formula: "NaXx3"},
		{name: "LowercaseStart", formula: "naCl"},
		{name: "MissingClose", formula: "Ca3(PO4"},
		{name: "StrayClose", formula: "Ca3)PO4("},
		{name: "MalformedAmount", formula: "Fe1.2.3"},
		{name: "ZeroAtoms", formula: "Fe0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.formula)
			require.Error(t, err)

			var invalidErr *ErrInvalidFormula
			assert.ErrorAs(t, err, &invalidErr)
		})
	}
}

func TestAtomicFraction(t *testing.T) {
	c := MustParse("Fe2O3")

	assert.InDelta(t, 0.4, c.AtomicFraction("Fe"), 1e-12)
	assert.InDelta(t, 0.6, c.AtomicFraction("O"), 1e-12)
	assert.InDelta(t, 0.0, c.AtomicFraction("Na"), 1e-12)
	assert.InDelta(t, 5.0, c.NumAtoms(), 1e-12)

	var sum float64
	for _, symbol := range c.Elements() {
		sum += c.AtomicFraction(symbol)
	}

	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestPairs(t *testing.T) {
	t.Run("SingleElement", func(t *testing.T) {
		assert.Empty(t, MustParse("Fe").Pairs())
	})

	t.Run("TwoElements", func(t *testing.T) {
		assert.Equal(t, [][2]string{{"Na", "Cl"}}, MustParse("NaCl").Pairs())
	})

	t.Run("ThreeElements", func(t *testing.T) {
		want := [][2]string{{"Li", "Co"}, {"Li", "O"}, {"Co", "O"}}
		assert.Equal(t, want, MustParse("LiCoO2").Pairs())
	})
}

func TestFormulaRoundTrip(t *testing.T) {
	tests := []struct {
		formula string
		want    string
	}{
		{formula: "NaCl", want: "NaCl"},
		{formula: "Fe2O3", want: "Fe2O3"},
		{formula: "Li0.5CoO2", want: "Li0.5CoO2"},
		{formula: "Ca3(PO4)2", want: "Ca3P2O8"},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			c := MustParse(tt.formula)
			assert.Equal(t, tt.want, c.Formula())
			assert.Equal(t, tt.want, c.String())
		})
	}
}

func TestFromMap(t *testing.T) {
	t.Run("OrdersByAtomicNumber", func(t *testing.T) {
		c, err := FromMap(map[string]float64{"O": 3, "Fe": 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"O", "Fe"}, c.Elements())
		assert.InDelta(t, 2.0, c.Amount("Fe"), 1e-12)
	})

	t.Run("UnknownSymbol", func(t *testing.T) {
		_, err := FromMap(map[string]float64{"Qq": 1})
		assert.Error(t, err)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		_, err := FromMap(map[string]float64{"Fe": -1})
		assert.Error(t, err)
	})
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not a formula!") })
}
