package dataset

import "github.com/rxtech-lab/argo-dataset/internal/types"

// Table is the labeled, scaled and cleaned feature table.
type Table struct {
	Records       []types.LabeledRecord
	Scale         ScaleParams
	ForwardWindow int
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// IsEmpty reports whether no row survived cleaning.
func (t *Table) IsEmpty() bool {
	return len(t.Records) == 0
}

// ActionDistribution counts records per action. Every action has an entry.
func (t *Table) ActionDistribution() map[types.Action]int {
	distribution := make(map[types.Action]int, len(types.Actions))
	for _, action := range types.Actions {
		distribution[action] = 0
	}

	for _, record := range t.Records {
		distribution[record.Action]++
	}

	return distribution
}

// Filter returns the records labeled with action.
func (t *Table) Filter(action types.Action) []types.LabeledRecord {
	var records []types.LabeledRecord

	for _, record := range t.Records {
		if record.Action == action {
			records = append(records, record)
		}
	}

	return records
}

// ColumnValue returns the numeric value of column for record. ok is false for
// date and unknown columns.
func ColumnValue(record types.LabeledRecord, column string) (value float64, ok bool) {
	switch column {
	case ColumnClose:
		return record.Close, true
	case ColumnHigh:
		return record.High, true
	case ColumnLow:
		return record.Low, true
	case ColumnOpen:
		return record.Open, true
	case ColumnVolume:
		return record.Volume, true
	case ColumnMovingAverage7:
		return record.MovingAverage7, true
	case ColumnMovingAverage20:
		return record.MovingAverage20, true
	case ColumnRSI14:
		return record.RSI14, true
	case ColumnBollingerUpper:
		return record.BollingerUpper, true
	case ColumnBollingerLower:
		return record.BollingerLower, true
	case ColumnAction:
		return float64(record.Action), true
	default:
		return 0, false
	}
}
