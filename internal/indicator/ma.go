package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// MA indicator implements Simple Moving Average calculation.
type MA struct {
	period int
}

// NewMA creates a new MA indicator with default configuration.
func NewMA() Indicator {
	return &MA{
		period: 20, // Default period
	}
}

// NewMAWithPeriod creates an MA indicator over the given period.
func NewMAWithPeriod(period int) (Indicator, error) {
	ma := NewMA()
	if err := ma.Config(period); err != nil {
		return nil, err
	}

	return ma, nil
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeMA
}

// Config expects one parameter: period (int or float64).
func (m *MA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, ok := params[0].(int)
	if !ok {
		// Try to convert to float first
		periodFloat, ok := params[0].(float64)
		if !ok {
			return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int or float")
		}

		period = int(periodFloat)
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	m.period = period

	return nil
}

// Warmup implements Indicator.
func (m *MA) Warmup() int {
	return m.period - 1
}

// Calculate returns the trailing mean of close over the configured period.
func (m *MA) Calculate(data []types.MarketData) (map[string]Series, error) {
	closes := Closes(data)
	series := newUndefinedSeries(len(closes))

	for i := m.period - 1; i < len(closes); i++ {
		series[i] = optional.Some(calculateSimpleMovingAverage(closes[i-m.period+1 : i+1]))
	}

	return map[string]Series{OutputMA: series}, nil
}

func calculateSimpleMovingAverage(window []float64) float64 {
	sum := 0.0
	for _, v := range window {
		sum += v
	}

	return sum / float64(len(window))
}
