package writer

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func bar(symbol string, t time.Time, close float64) types.MarketData {
	return types.MarketData{
		Symbol: symbol,
		Time:   t,
		Open:   close - 1,
		High:   close + 1,
		Low:    close - 2,
		Close:  close,
		Volume: 1000,
	}
}

func (suite *DuckDBWriterTestSuite) TestNewDuckDBWriter() {
	outputPath := filepath.Join(suite.tempDir, "test.parquet")
	writer := NewDuckDBWriter(outputPath, nil)

	duckWriter, ok := writer.(*DuckDBWriter)
	suite.Require().True(ok)
	suite.Equal(outputPath, duckWriter.GetOutputPath())
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "init.parquet"), nil)
	suite.Require().NoError(writer.Initialize())
	defer writer.Close()

	duckWriter := writer.(*DuckDBWriter)
	suite.NotNil(duckWriter.db)
	suite.NotNil(duckWriter.tx)
	suite.NotNil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestWriteWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "no_init.parquet"), nil)

	err := writer.Write(bar("AAPL", time.Now(), 150))
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataWriteFailed))
	suite.Contains(err.Error(), "writer not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFinalizeWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "no_init.parquet"), nil)

	_, err := writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "writer not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFullWorkflow() {
	outputPath := filepath.Join(suite.tempDir, "workflow.parquet")
	writer := NewDuckDBWriter(outputPath, nil)
	suite.Require().NoError(writer.Initialize())
	defer writer.Close()

	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	// written out of order, exported ordered by time
	suite.Require().NoError(writer.Write(bar("SPY", base.AddDate(0, 0, 1), 101)))
	suite.Require().NoError(writer.Write(bar("SPY", base, 100)))

	path, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.Equal(outputPath, path)
	suite.FileExists(path)

	db, err := sql.Open("duckdb", "")
	suite.Require().NoError(err)
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf(`SELECT id, close FROM read_parquet('%s')`, path))
	suite.Require().NoError(err)
	defer rows.Close()

	var closes []float64

	for rows.Next() {
		var (
			id    string
			close float64
		)

		suite.Require().NoError(rows.Scan(&id, &close))
		suite.NotEmpty(id)

		closes = append(closes, close)
	}

	suite.Equal([]float64{100, 101}, closes)
}

func (suite *DuckDBWriterTestSuite) TestWriteAfterFinalize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "after.parquet"), nil)
	suite.Require().NoError(writer.Initialize())
	defer writer.Close()

	_, err := writer.Finalize()
	suite.Require().NoError(err)

	suite.Error(writer.Write(bar("SPY", time.Now(), 1)))

	_, err = writer.Finalize()
	suite.Error(err)
}

func (suite *DuckDBWriterTestSuite) TestFinalizeExportError() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "missing", "dir", "out.parquet"), nil)
	suite.Require().NoError(writer.Initialize())
	defer writer.Close()

	suite.Require().NoError(writer.Write(bar("SPY", time.Now(), 1)))

	_, err := writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "failed to export to Parquet")
}

func (suite *DuckDBWriterTestSuite) TestCloseWithActiveTransaction() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "active.parquet"), nil)
	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(bar("SPY", time.Now(), 1)))

	suite.NoError(writer.Close())
	suite.NoError(writer.Close())
	suite.NoFileExists(writer.GetOutputPath())
}
