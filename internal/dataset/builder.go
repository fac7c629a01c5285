package dataset

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dataset/internal/indicator"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// Builder turns raw price data into a labeled feature table.
// A Builder holds no state between builds.
type Builder struct {
	config         Config
	shortMA        indicator.Indicator
	longMA         indicator.Indicator
	rsi            indicator.Indicator
	bollingerBands indicator.Indicator
}

// NewBuilder validates config and prepares the indicators.
func NewBuilder(config Config) (*Builder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	shortMA, err := indicator.NewMAWithPeriod(7)
	if err != nil {
		return nil, err
	}

	longMA, err := indicator.NewMAWithPeriod(LongestWindow)
	if err != nil {
		return nil, err
	}

	return &Builder{
		config:         config,
		shortMA:        shortMA,
		longMA:         longMA,
		rsi:            indicator.NewRSI(),
		bollingerBands: indicator.NewBollingerBands(),
	}, nil
}

// Config returns the builder configuration.
func (b *Builder) Config() Config {
	return b.config
}

// BuildRaw coerces raw and builds the labeled table from it.
func (b *Builder) BuildRaw(raw RawTable) (*Table, error) {
	data, err := ParseRawTable(raw)
	if err != nil {
		return nil, err
	}

	return b.Build(data)
}

// Build labels data, derives the indicators, scales the numeric columns and
// drops every row with an undefined value. Input shorter than
// Config.MinimumRows yields an empty table.
func (b *Builder) Build(data []types.MarketData) (*Table, error) {
	data, err := sortByDate(data)
	if err != nil {
		return nil, err
	}

	closes := indicator.Closes(data)

	// labels come from raw closes and are never recomputed
	futureMax, futureMin := ForwardExtremes(closes, b.config.ForwardWindow)

	actions, err := LabelActions(closes, futureMax, futureMin)
	if err != nil {
		return nil, err
	}

	columns, err := b.columns(data)
	if err != nil {
		return nil, err
	}

	scaled, params := FitTransform(columns)

	records := make([]types.LabeledRecord, 0, max(0, len(data)-b.config.MinimumRows()+1))

	for i := range data {
		if futureMax[i].IsNone() || futureMin[i].IsNone() {
			continue
		}

		value := func(column string) optional.Option[float64] {
			return scaled[column][i]
		}

		complete := true

		for _, column := range ScaledColumns {
			if value(column).IsNone() {
				complete = false
				break
			}
		}

		if !complete {
			continue
		}

		records = append(records, types.LabeledRecord{
			MarketData: types.MarketData{
				Id:     data[i].Id,
				Symbol: data[i].Symbol,
				Time:   data[i].Time,
				Open:   value(ColumnOpen).Unwrap(),
				High:   value(ColumnHigh).Unwrap(),
				Low:    value(ColumnLow).Unwrap(),
				Close:  value(ColumnClose).Unwrap(),
				Volume: value(ColumnVolume).Unwrap(),
			},
			MovingAverage7:  value(ColumnMovingAverage7).Unwrap(),
			MovingAverage20: value(ColumnMovingAverage20).Unwrap(),
			RSI14:           value(ColumnRSI14).Unwrap(),
			BollingerUpper:  value(ColumnBollingerUpper).Unwrap(),
			BollingerLower:  value(ColumnBollingerLower).Unwrap(),
			Action:          actions[i],
		})
	}

	return &Table{
		Records:       records,
		Scale:         params,
		ForwardWindow: b.config.ForwardWindow,
	}, nil
}

// columns returns every column to be scaled, aligned with data.
func (b *Builder) columns(data []types.MarketData) (map[string]indicator.Series, error) {
	columns := make(map[string]indicator.Series, len(ScaledColumns))

	raw := map[string]func(types.MarketData) float64{
		ColumnClose:  func(d types.MarketData) float64 { return d.Close },
		ColumnHigh:   func(d types.MarketData) float64 { return d.High },
		ColumnLow:    func(d types.MarketData) float64 { return d.Low },
		ColumnOpen:   func(d types.MarketData) float64 { return d.Open },
		ColumnVolume: func(d types.MarketData) float64 { return d.Volume },
	}

	for name, field := range raw {
		series := make(indicator.Series, len(data))
		for i, d := range data {
			series[i] = optional.Some(field(d))
		}

		columns[name] = series
	}

	outputs := []struct {
		indicator indicator.Indicator
		output    string
		column    string
	}{
		{b.shortMA, indicator.OutputMA, ColumnMovingAverage7},
		{b.longMA, indicator.OutputMA, ColumnMovingAverage20},
		{b.rsi, indicator.OutputRSI, ColumnRSI14},
		{b.bollingerBands, indicator.OutputUpper, ColumnBollingerUpper},
		{b.bollingerBands, indicator.OutputLower, ColumnBollingerLower},
	}

	results := make(map[indicator.Indicator]map[string]indicator.Series, 4)

	for _, o := range outputs {
		result, ok := results[o.indicator]
		if !ok {
			var err error

			result, err = o.indicator.Calculate(data)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to calculate %s", o.indicator.Name())
			}

			results[o.indicator] = result
		}

		series, ok := result[o.output]
		if !ok {
			return nil, errors.Newf(errors.ErrCodeIndicatorCalculation, "%s has no output %q", o.indicator.Name(), o.output)
		}

		columns[o.column] = series
	}

	return columns, nil
}
