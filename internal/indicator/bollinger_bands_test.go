package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestNewBollingerBands() {
	bb := NewBollingerBands()
	bbImpl := bb.(*BollingerBands)

	suite.Equal(20, bbImpl.period)
	suite.Equal(2.0, bbImpl.stdDev)
	suite.Equal(types.IndicatorTypeBollingerBands, bb.Name())
	suite.Equal(19, bb.Warmup())
}

func (suite *BollingerBandsTestSuite) TestConfigValid() {
	bb := NewBollingerBands()

	err := bb.Config(10, 1.5)
	suite.NoError(err)
	suite.Equal(10, bb.(*BollingerBands).period)
	suite.Equal(1.5, bb.(*BollingerBands).stdDev)
}

func (suite *BollingerBandsTestSuite) TestConfigErrors() {
	bb := NewBollingerBands()

	err := bb.Config(10)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	err = bb.Config("10", 2.0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))

	err = bb.Config(0, 2.0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	err = bb.Config(10, 2)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))

	err = bb.Config(10, -1.0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStdDev))
}

func (suite *BollingerBandsTestSuite) TestCalculate() {
	bb := NewBollingerBands()
	suite.Require().NoError(bb.Config(3, 2.0))

	result, err := bb.Calculate(marketDataFromCloses(1, 2, 3, 3))
	suite.Require().NoError(err)

	std := math.Sqrt(2.0 / 3.0)

	suite.True(result[OutputUpper][1].IsNone())
	suite.InDelta(2.0, result[OutputMiddle][2].Unwrap(), 1e-12)
	suite.InDelta(2.0+2*std, result[OutputUpper][2].Unwrap(), 1e-12)
	suite.InDelta(2.0-2*std, result[OutputLower][2].Unwrap(), 1e-12)

	// window {2,3,3}: mean 8/3
	suite.InDelta(8.0/3.0, result[OutputMiddle][3].Unwrap(), 1e-12)
}

func (suite *BollingerBandsTestSuite) TestFlatSeriesCollapsesBands() {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 50
	}

	result, err := NewBollingerBands().Calculate(marketDataFromCloses(closes...))
	suite.Require().NoError(err)

	suite.Equal(19, result[OutputUpper].DefinedFrom())

	for i, v := range result[OutputUpper].Values() {
		suite.Equal(50.0, v)
		suite.Equal(50.0, result[OutputLower].Values()[i])
	}
}
