package types

// LabeledRecord is a cleaned, labeled and scaled row of the feature table.
// The OHLCV fields and the indicator fields hold min-max scaled values.
type LabeledRecord struct {
	MarketData

	MovingAverage7  float64 `csv:"moving_average_7"`
	MovingAverage20 float64 `csv:"moving_average_20"`
	RSI14           float64 `csv:"rsi_14"`
	BollingerUpper  float64 `csv:"bollinger_upper"`
	BollingerLower  float64 `csv:"bollinger_lower"`
	Action          Action  `csv:"action"`
}
