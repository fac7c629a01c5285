package indicator

import (
	"time"

	"github.com/rxtech-lab/argo-dataset/internal/types"
)

func marketDataFromCloses(closes ...float64) []types.MarketData {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := make([]types.MarketData, len(closes))

	for i, c := range closes {
		data[i] = types.MarketData{
			Symbol: "TEST",
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}

	return data
}
