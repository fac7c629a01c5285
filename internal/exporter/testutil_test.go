package exporter

import (
	"time"

	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/internal/types"
)

func sampleTable() *dataset.Table {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actions := []types.Action{types.ActionBuy, types.ActionHold, types.ActionSell, types.ActionHold}

	records := make([]types.LabeledRecord, len(actions))
	for i, action := range actions {
		v := float64(i) / float64(len(actions)-1)
		records[i] = types.LabeledRecord{
			MarketData: types.MarketData{
				Time:   base.AddDate(0, 0, i),
				Open:   v,
				High:   v,
				Low:    v,
				Close:  v,
				Volume: 1 - v,
			},
			MovingAverage7:  v / 2,
			MovingAverage20: v / 3,
			RSI14:           0.25,
			BollingerUpper:  v,
			BollingerLower:  0.125,
			Action:          action,
		}
	}

	scale := dataset.ScaleParams{}
	for _, column := range dataset.ScaledColumns {
		scale[column] = dataset.ColumnRange{Min: 1.5, Max: 250.75}
	}

	return &dataset.Table{
		Records:       records,
		Scale:         scale,
		ForwardWindow: 3,
	}
}
