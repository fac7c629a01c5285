package dataset

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RawTableTestSuite struct {
	suite.Suite
}

func TestRawTableSuite(t *testing.T) {
	suite.Run(t, new(RawTableTestSuite))
}

func rawTable(rows ...[]string) RawTable {
	return RawTable{
		Columns: []string{"Date", "Close", "High", "Low", "Open", "Volume"},
		Rows:    rows,
	}
}

func (suite *RawTableTestSuite) TestParseDecimal() {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{name: "dot separator", input: "150.25", expected: 150.25},
		{name: "comma separator", input: "150,25", expected: 150.25},
		{name: "surrounding spaces", input: "  42 ", expected: 42},
		{name: "negative", input: "-0,5", expected: -0.5},
		{name: "empty", input: "", wantErr: true},
		{name: "text", input: "n/a", wantErr: true},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, err := ParseDecimal(tt.input)
			if tt.wantErr {
				suite.Error(err)
				return
			}

			suite.NoError(err)
			suite.InDelta(tt.expected, got, 1e-12)
		})
	}
}

func (suite *RawTableTestSuite) TestParseDate() {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2024-01-02 15:30:00", time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC)},
		{"2024-01-02T00:00:00Z", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"01/02/2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		suite.NoError(err, tt.input)
		suite.True(tt.expected.Equal(got), tt.input)
	}

	_, err := ParseDate("yesterday")
	suite.Error(err)
}

func (suite *RawTableTestSuite) TestParseRawTableCoercesAndSorts() {
	data, err := ParseRawTable(rawTable(
		[]string{"2024-01-03", "101,5", "102", "100", "100,75", "1200"},
		[]string{"2024-01-02", "100.5", "101", "99", "99.75", "1000,0"},
	))
	suite.Require().NoError(err)
	suite.Require().Len(data, 2)

	suite.True(data[0].Time.Before(data[1].Time))
	suite.Equal(100.5, data[0].Close)
	suite.Equal(1000.0, data[0].Volume)
	suite.Equal(101.5, data[1].Close)
	suite.Equal(100.75, data[1].Open)
}

func (suite *RawTableTestSuite) TestParseRawTableMissingColumn() {
	_, err := ParseRawTable(RawTable{
		Columns: []string{"Date", "Close", "High", "Low", "Open"},
		Rows:    [][]string{{"2024-01-02", "1", "1", "1", "1"}},
	})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingColumn))
	suite.Contains(err.Error(), "volume")
}

func (suite *RawTableTestSuite) TestParseRawTableMalformedNumber() {
	_, err := ParseRawTable(rawTable(
		[]string{"2024-01-02", "100", "101", "99", "100", "1000"},
		[]string{"2024-01-03", "abc", "101", "99", "100", "1000"},
	))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedNumber))

	var cellErr *errors.CellError
	suite.Require().ErrorAs(err, &cellErr)
	suite.Equal(1, cellErr.Row)
	suite.Equal(ColumnClose, cellErr.Column)
	suite.Equal("abc", cellErr.Value)
}

func (suite *RawTableTestSuite) TestParseRawTableInvalidDate() {
	_, err := ParseRawTable(rawTable(
		[]string{"not a date", "100", "101", "99", "100", "1000"},
	))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidDate))
}

func (suite *RawTableTestSuite) TestParseRawTableDuplicateDate() {
	_, err := ParseRawTable(rawTable(
		[]string{"2024-01-02", "100", "101", "99", "100", "1000"},
		[]string{"2024-01-02", "101", "102", "100", "101", "1000"},
	))
	suite.True(errors.HasCode(err, errors.ErrCodeDuplicateDate))
}

func (suite *RawTableTestSuite) TestParseRawTableShortRow() {
	_, err := ParseRawTable(rawTable(
		[]string{"2024-01-02", "100", "101"},
	))
	suite.True(errors.HasCode(err, errors.ErrCodeMissingColumn))
}

func TestParseRawTableKeepsSymbol(t *testing.T) {
	data, err := ParseRawTable(RawTable{
		Columns: []string{"symbol", "date", "close", "high", "low", "open", "volume"},
		Rows:    [][]string{{"AAPL", "2024-01-02", "1", "1", "1", "1", "1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", data[0].Symbol)
}

func TestParseRawTableEmpty(t *testing.T) {
	data, err := ParseRawTable(rawTable())
	require.NoError(t, err)
	assert.Empty(t, data)
}
