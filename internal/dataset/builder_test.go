package dataset

import (
	"testing"

	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BuilderTestSuite struct {
	suite.Suite
	builder *Builder
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderTestSuite))
}

func (suite *BuilderTestSuite) SetupTest() {
	builder, err := NewBuilder(DefaultConfig())
	suite.Require().NoError(err)
	suite.builder = builder
}

func (suite *BuilderTestSuite) TestNewBuilderInvalidForwardWindow() {
	_, err := NewBuilder(Config{ForwardWindow: 0})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidForwardWindow))

	_, err = NewBuilder(Config{ForwardWindow: -2})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidForwardWindow))
}

func (suite *BuilderTestSuite) TestMinimumRows() {
	suite.Equal(23, DefaultConfig().MinimumRows())
	suite.Equal(25, Config{ForwardWindow: 5}.MinimumRows())
}

func (suite *BuilderTestSuite) TestBuildTooShortIsEmpty() {
	for _, n := range []int{0, 1, 22} {
		table, err := suite.builder.Build(marketData(zigzag(n)...))
		suite.Require().NoError(err)
		suite.True(table.IsEmpty(), "n=%d", n)
		suite.NotNil(table.Records)
		suite.Equal(3, table.ForwardWindow)
	}
}

func (suite *BuilderTestSuite) TestBuildMinimumRowsYieldsOneRow() {
	table, err := suite.builder.Build(marketData(zigzag(23)...))
	suite.Require().NoError(err)
	suite.Equal(1, table.Len())
	suite.True(table.Records[0].Time.Equal(baseDate.AddDate(0, 0, 19)))
}

func (suite *BuilderTestSuite) TestBuildDropsIncompleteRows() {
	table, err := suite.builder.Build(marketData(zigzag(30)...))
	suite.Require().NoError(err)

	// rows 0..18 lack MA20/Bollinger, the last 3 lack forward values
	suite.Equal(8, table.Len())
	suite.True(table.Records[0].Time.Equal(baseDate.AddDate(0, 0, 19)))
	suite.True(table.Records[7].Time.Equal(baseDate.AddDate(0, 0, 26)))

	for i := 1; i < table.Len(); i++ {
		suite.True(table.Records[i-1].Time.Before(table.Records[i].Time))
	}
}

func (suite *BuilderTestSuite) TestBuildScaledColumnsInUnitInterval() {
	table, err := suite.builder.Build(marketData(zigzag(60)...))
	suite.Require().NoError(err)
	suite.Require().False(table.IsEmpty())

	for _, record := range table.Records {
		for _, column := range ScaledColumns {
			v, ok := ColumnValue(record, column)
			suite.Require().True(ok)
			suite.GreaterOrEqual(v, 0.0, column)
			suite.LessOrEqual(v, 1.0, column)
		}

		suite.True(record.Action.IsValid())
	}

	for _, column := range ScaledColumns {
		suite.Contains(table.Scale, column)
	}
}

func (suite *BuilderTestSuite) TestBuildLabelsFromRawCloses() {
	closes := zigzag(40)
	data := marketData(closes...)

	table, err := suite.builder.Build(data)
	suite.Require().NoError(err)

	futureMax, futureMin := ForwardExtremes(closes, 3)
	actions, err := LabelActions(closes, futureMax, futureMin)
	suite.Require().NoError(err)

	for i, record := range table.Records {
		suite.Equal(actions[19+i], record.Action)
	}
}

func (suite *BuilderTestSuite) TestBuildIncreasingSeries() {
	table, err := suite.builder.Build(marketData(increasing(100, 30)...))
	suite.Require().NoError(err)
	suite.Equal(8, table.Len())

	distribution := table.ActionDistribution()
	suite.Equal(0, distribution[types.ActionSell])
	suite.Equal(8, distribution[types.ActionBuy])
	suite.Equal(0, distribution[types.ActionHold])
}

func (suite *BuilderTestSuite) TestBuildIsIdempotent() {
	data := marketData(zigzag(50)...)

	first, err := suite.builder.Build(data)
	suite.Require().NoError(err)

	second, err := suite.builder.Build(data)
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

func (suite *BuilderTestSuite) TestBuildSortsInput() {
	data := marketData(zigzag(30)...)
	reversed := make([]types.MarketData, len(data))
	for i, d := range data {
		reversed[len(data)-1-i] = d
	}

	expected, err := suite.builder.Build(data)
	suite.Require().NoError(err)

	actual, err := suite.builder.Build(reversed)
	suite.Require().NoError(err)

	suite.Equal(expected, actual)
	suite.Equal(baseDate, data[0].Time, "input must not be reordered")
}

func (suite *BuilderTestSuite) TestBuildDuplicateDate() {
	data := marketData(zigzag(30)...)
	data[5].Time = data[4].Time

	_, err := suite.builder.Build(data)
	suite.True(errors.HasCode(err, errors.ErrCodeDuplicateDate))
}

func (suite *BuilderTestSuite) TestBuildRaw() {
	raw := RawTable{Columns: RawColumns}
	for _, d := range marketData(zigzag(25)...) {
		raw.Rows = append(raw.Rows, []string{
			d.Time.Format("2006-01-02"),
			formatComma(d.Close),
			formatComma(d.High),
			formatComma(d.Low),
			formatComma(d.Open),
			formatComma(d.Volume),
		})
	}

	table, err := suite.builder.BuildRaw(raw)
	suite.Require().NoError(err)
	suite.Equal(3, table.Len())

	expected, err := suite.builder.Build(marketData(zigzag(25)...))
	suite.Require().NoError(err)

	for i := range expected.Records {
		suite.InDelta(expected.Records[i].Close, table.Records[i].Close, 1e-9)
		suite.Equal(expected.Records[i].Action, table.Records[i].Action)
	}
}

func (suite *BuilderTestSuite) TestBuildRawMalformed() {
	_, err := suite.builder.BuildRaw(RawTable{
		Columns: RawColumns,
		Rows:    [][]string{{"2024-01-02", "1.2.3", "1", "1", "1", "1"}},
	})
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedNumber))
}

func (suite *BuilderTestSuite) TestActionDistributionHasEveryAction() {
	table := &Table{Records: []types.LabeledRecord{{Action: types.ActionBuy}, {Action: types.ActionBuy}}}

	suite.Equal(map[types.Action]int{
		types.ActionSell: 0,
		types.ActionBuy:  2,
		types.ActionHold: 0,
	}, table.ActionDistribution())
	suite.Len(table.Filter(types.ActionBuy), 2)
	suite.Empty(table.Filter(types.ActionSell))
}
