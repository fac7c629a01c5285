package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// BollingerBands implements the Indicator interface for Bollinger Bands.
type BollingerBands struct {
	period int     // Number of periods for moving average
	stdDev float64 // Number of standard deviations
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period: 20,  // Default period
		stdDev: 2.0, // Default standard deviation
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Config configures the Bollinger Bands indicator. Expected parameters: period (int), stdDev (float64).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: period (int), stdDev (float64)")
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	stdDev, ok := params[1].(float64)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for stdDev parameter, expected float64")
	}

	if stdDev <= 0 {
		return errors.Newf(errors.ErrCodeInvalidStdDev, "stdDev must be a positive number, got %f", stdDev)
	}

	bb.period = period
	bb.stdDev = stdDev

	return nil
}

// Warmup implements Indicator.
func (bb *BollingerBands) Warmup() int {
	return bb.period - 1
}

// Calculate returns the upper, middle and lower bands for every row.
func (bb *BollingerBands) Calculate(data []types.MarketData) (map[string]Series, error) {
	closes := Closes(data)
	upper := newUndefinedSeries(len(closes))
	middle := newUndefinedSeries(len(closes))
	lower := newUndefinedSeries(len(closes))

	for i := bb.period - 1; i < len(closes); i++ {
		u, m, l := bb.calculateBands(closes[i-bb.period+1 : i+1])
		upper[i] = optional.Some(u)
		middle[i] = optional.Some(m)
		lower[i] = optional.Some(l)
	}

	return map[string]Series{
		OutputUpper:  upper,
		OutputMiddle: middle,
		OutputLower:  lower,
	}, nil
}

// calculateBands calculates the band values over one window using the population standard deviation.
func (bb *BollingerBands) calculateBands(window []float64) (upper, middle, lower float64) {
	middle = calculateSimpleMovingAverage(window)

	var squaredDiffSum float64

	for _, v := range window {
		diff := v - middle
		squaredDiffSum += diff * diff
	}

	stdDev := math.Sqrt(squaredDiffSum / float64(len(window)))

	upper = middle + (bb.stdDev * stdDev)
	lower = middle - (bb.stdDev * stdDev)

	return upper, middle, lower
}
