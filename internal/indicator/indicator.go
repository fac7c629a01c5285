package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dataset/internal/types"
)

// Output keys of Indicator.Calculate.
const (
	OutputMA     = "ma"
	OutputRSI    = "rsi"
	OutputUpper  = "upper"
	OutputMiddle = "middle"
	OutputLower  = "lower"
)

// Series is an indicator output aligned row by row with its input.
// None marks rows without enough history for the indicator.
type Series []optional.Option[float64]

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config configures the indicator, parameters depend on the implementation
	Config(params ...any) error
	// Warmup returns the number of leading rows for which the indicator is undefined
	Warmup() int
	// Calculate computes the indicator over the whole series. The returned
	// map is keyed by the Output* constants and every Series has len(data) entries.
	Calculate(data []types.MarketData) (map[string]Series, error)
}

// Closes extracts the close prices of data.
func Closes(data []types.MarketData) []float64 {
	closes := make([]float64, len(data))
	for i, d := range data {
		closes[i] = d.Close
	}

	return closes
}

// newUndefinedSeries returns a Series of n None values.
func newUndefinedSeries(n int) Series {
	series := make(Series, n)
	for i := range series {
		series[i] = optional.None[float64]()
	}

	return series
}

// Values returns the defined values of s, skipping None entries.
func (s Series) Values() []float64 {
	values := make([]float64, 0, len(s))
	for _, v := range s {
		if v.IsSome() {
			values = append(values, v.Unwrap())
		}
	}

	return values
}

// DefinedFrom returns the index of the first defined entry, or len(s) if none is defined.
func (s Series) DefinedFrom() int {
	for i, v := range s {
		if v.IsSome() {
			return i
		}
	}

	return len(s)
}
