package dataset

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-dataset/internal/indicator"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

const (
	// BuyTolerance allows a BUY when close is at most 1% above the future minimum.
	BuyTolerance = 1.01
	// SellTolerance allows a SELL when close is at most 1% below the future maximum.
	SellTolerance = 0.99
)

// ForwardExtremes returns, for every row i, the max and min of
// closes[i+1 .. i+window]. Rows whose window runs past the end are None.
func ForwardExtremes(closes []float64, window int) (futureMax, futureMin indicator.Series) {
	n := len(closes)
	futureMax = make(indicator.Series, n)
	futureMin = make(indicator.Series, n)

	for i := range closes {
		if window < 1 || i+window >= n {
			futureMax[i] = optional.None[float64]()
			futureMin[i] = optional.None[float64]()

			continue
		}

		hi, lo := closes[i+1], closes[i+1]
		for _, c := range closes[i+2 : i+window+1] {
			hi = max(hi, c)
			lo = min(lo, c)
		}

		futureMax[i] = optional.Some(hi)
		futureMin[i] = optional.Some(lo)
	}

	return futureMax, futureMin
}

// LabelActions assigns an action to every row. Rows default to HOLD, the BUY
// mask is applied first and the SELL mask second, so SELL wins when both match.
// Rows with an undefined forward value stay HOLD.
func LabelActions(closes []float64, futureMax, futureMin indicator.Series) ([]types.Action, error) {
	if len(futureMax) != len(closes) || len(futureMin) != len(closes) {
		return nil, errors.Newf(errors.ErrCodeLengthMismatch,
			"closes (%d), future max (%d) and future min (%d) must have the same length",
			len(closes), len(futureMax), len(futureMin))
	}

	actions := make([]types.Action, len(closes))
	for i := range actions {
		actions[i] = types.ActionHold
	}

	applyMask(actions, buyMask(closes, futureMax, futureMin), types.ActionBuy)
	applyMask(actions, sellMask(closes, futureMax, futureMin), types.ActionSell)

	return actions, nil
}

func buyMask(closes []float64, futureMax, futureMin indicator.Series) []bool {
	return mask(closes, futureMax, futureMin, func(c, hi, lo float64) bool {
		return c < hi && c <= lo*BuyTolerance
	})
}

func sellMask(closes []float64, futureMax, futureMin indicator.Series) []bool {
	return mask(closes, futureMax, futureMin, func(c, hi, lo float64) bool {
		return c > lo && c >= hi*SellTolerance
	})
}

func mask(closes []float64, futureMax, futureMin indicator.Series, match func(c, hi, lo float64) bool) []bool {
	m := make([]bool, len(closes))

	for i, c := range closes {
		if futureMax[i].IsNone() || futureMin[i].IsNone() {
			continue
		}

		m[i] = match(c, futureMax[i].Unwrap(), futureMin[i].Unwrap())
	}

	return m
}

func applyMask(actions []types.Action, m []bool, action types.Action) {
	for i, selected := range m {
		if selected {
			actions[i] = action
		}
	}
}
