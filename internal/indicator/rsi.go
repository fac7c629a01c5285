package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
//
// Average gain and loss use Wilder's smoothing, expressed as an exponential
// mean with alpha = 1/period started on the first row. The first row has no
// previous close and contributes a zero gain and a zero loss. Values are
// defined from row period-1 onwards.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	r.period = period

	return nil
}

// Warmup implements Indicator.
func (r *RSI) Warmup() int {
	return r.period - 1
}

// Calculate implements Indicator.
func (r *RSI) Calculate(data []types.MarketData) (map[string]Series, error) {
	closes := Closes(data)
	series := newUndefinedSeries(len(closes))

	alpha := 1 / float64(r.period)
	avgGain := 0.0
	avgLoss := 0.0

	for i := range closes {
		gain, loss := 0.0, 0.0

		if i > 0 {
			change := closes[i] - closes[i-1]
			if change > 0 {
				gain = change
			} else {
				loss = -change
			}
		}

		if i == 0 {
			avgGain, avgLoss = gain, loss
		} else {
			avgGain = (1-alpha)*avgGain + alpha*gain
			avgLoss = (1-alpha)*avgLoss + alpha*loss
		}

		if i < r.period-1 {
			continue
		}

		series[i] = optional.Some(relativeStrengthIndex(avgGain, avgLoss))
	}

	return map[string]Series{OutputRSI: series}, nil
}

func relativeStrengthIndex(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
