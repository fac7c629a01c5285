package dataset

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dataset/internal/indicator"
)

// ColumnRange is the fitted range of one column.
type ColumnRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Scale maps v into [0,1]. A constant column maps to 0.
func (r ColumnRange) Scale(v float64) float64 {
	span := r.Max - r.Min
	if span == 0 {
		return 0
	}

	return (v - r.Min) / span
}

// ScaleParams holds the fitted range of each scaled column.
// Columns without any defined value are absent.
type ScaleParams map[string]ColumnRange

// FitMinMax computes the per-column range over the defined values of columns.
func FitMinMax(columns map[string]indicator.Series) ScaleParams {
	params := make(ScaleParams, len(columns))

	for name, series := range columns {
		values := series.Values()
		if len(values) == 0 {
			continue
		}

		r := ColumnRange{Min: values[0], Max: values[0]}
		for _, v := range values[1:] {
			r.Min = min(r.Min, v)
			r.Max = max(r.Max, v)
		}

		params[name] = r
	}

	return params
}

// Transform scales every column that has a fitted range and returns new series.
// Undefined entries stay undefined. Columns without a range are returned
// unchanged.
func (p ScaleParams) Transform(columns map[string]indicator.Series) map[string]indicator.Series {
	scaled := make(map[string]indicator.Series, len(columns))

	for name, series := range columns {
		r, ok := p[name]
		out := make(indicator.Series, len(series))

		for i, v := range series {
			if !ok || v.IsNone() {
				out[i] = v
				continue
			}

			out[i] = optional.Some(r.Scale(v.Unwrap()))
		}

		scaled[name] = out
	}

	return scaled
}

// FitTransform fits the ranges of columns and scales them in one step.
func FitTransform(columns map[string]indicator.Series) (map[string]indicator.Series, ScaleParams) {
	params := FitMinMax(columns)
	return params.Transform(columns), params
}
