package dataset

// Column names of raw and labeled tables.
const (
	ColumnDate            = "date"
	ColumnSymbol          = "symbol"
	ColumnClose           = "close"
	ColumnHigh            = "high"
	ColumnLow             = "low"
	ColumnOpen            = "open"
	ColumnVolume          = "volume"
	ColumnMovingAverage7  = "moving_average_7"
	ColumnMovingAverage20 = "moving_average_20"
	ColumnRSI14           = "rsi_14"
	ColumnBollingerUpper  = "bollinger_upper"
	ColumnBollingerLower  = "bollinger_lower"
	ColumnAction          = "action"
)

// RawColumns are the required columns of a raw price table, in spreadsheet order.
var RawColumns = []string{ColumnDate, ColumnClose, ColumnHigh, ColumnLow, ColumnOpen, ColumnVolume}

// FeatureColumns are the derived indicator columns, in output order.
var FeatureColumns = []string{
	ColumnMovingAverage7,
	ColumnMovingAverage20,
	ColumnRSI14,
	ColumnBollingerUpper,
	ColumnBollingerLower,
}

// ScaledColumns are min-max scaled. date and action never are.
var ScaledColumns = []string{
	ColumnClose,
	ColumnHigh,
	ColumnLow,
	ColumnOpen,
	ColumnVolume,
	ColumnMovingAverage7,
	ColumnMovingAverage20,
	ColumnRSI14,
	ColumnBollingerUpper,
	ColumnBollingerLower,
}

// OutputColumns is the column layout of an exported labeled table.
var OutputColumns = append(append(append([]string{}, RawColumns...), FeatureColumns...), ColumnAction)
