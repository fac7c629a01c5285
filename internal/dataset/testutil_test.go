package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-dataset/internal/types"
)

var baseDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// marketData builds one bar per close on consecutive days.
func marketData(closes ...float64) []types.MarketData {
	data := make([]types.MarketData, len(closes))
	for i, c := range closes {
		data[i] = types.MarketData{
			Symbol: "SPY",
			Time:   baseDate.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000 + float64(i*10),
		}
	}

	return data
}

// increasing returns n closes starting at start and rising by one.
func increasing(start float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)
	}

	return closes
}

// zigzag returns n closes oscillating around 100.
func zigzag(n int) []float64 {
	pattern := []float64{100, 103, 101, 97, 99, 104, 102, 96, 98, 100.5}
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = pattern[i%len(pattern)] + float64(i)*0.1
	}

	return closes
}

// formatComma renders v with a comma decimal separator.
func formatComma(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', -1, 64), ".", ",")
}
