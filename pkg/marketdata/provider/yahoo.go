package provider

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/rxtech-lab/argo-dataset/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// YahooChartIterator iterates over chart bars.
type YahooChartIterator interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
}

// YahooAPIClient is the part of the Yahoo Finance chart API used for downloads.
type YahooAPIClient interface {
	Chart(params *chart.Params) YahooChartIterator
}

// yahooClientWrapper adapts the chart package to YahooAPIClient.
type yahooClientWrapper struct{}

func (yahooClientWrapper) Chart(params *chart.Params) YahooChartIterator {
	return chart.Get(params)
}

type YahooClient struct {
	apiClient YahooAPIClient
	writer    writer.MarketDataWriter
	logger    *logger.Logger
}

// NewYahooClient creates a Yahoo Finance provider. No authentication is needed.
func NewYahooClient() (Provider, error) {
	return NewYahooClientWithAPI(yahooClientWrapper{}), nil
}

// NewYahooClientWithAPI creates a Yahoo Finance provider on top of apiClient.
func NewYahooClientWithAPI(apiClient YahooAPIClient) *YahooClient {
	return &YahooClient{
		apiClient: apiClient,
		writer:    nil,
		logger:    logger.NewNopLogger(),
	}
}

func (c *YahooClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

func (c *YahooClient) ConfigLogger(log *logger.Logger) {
	if log != nil {
		c.logger = log
	}
}

// Download downloads chart bars for ticker between startDate and endDate.
func (c *YahooClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (path string, err error) {
	interval, err := convertTimespanToYahooInterval(timespan, multiplier)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidTimespan, "failed to convert timespan to Yahoo interval", err)
	}

	if c.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer is not configured")
	}

	err = c.writer.Initialize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer", err)
	}

	written := 0

	defer func() {
		closeWriter(c.writer, &err, c.logger)

		if err != nil {
			removeEmptyOutput(c.writer, written, c.logger)
		}
	}()

	totalDays := endDate.Sub(startDate).Hours() / 24
	message := fmt.Sprintf("Downloading %s from Yahoo Finance", ticker)
	bar := newProgressBar(int(totalDays)+1, message)

	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&startDate),
		End:      datetime.New(&endDate),
		Interval: interval,
	}

	bars := c.apiClient.Chart(params)

	for bars.Next() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		b := bars.Bar()
		barTime := time.Unix(int64(b.Timestamp), 0).UTC()

		err = c.writer.Write(types.MarketData{
			Id:     "",
			Symbol: ticker,
			Time:   barTime,
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: float64(b.Volume),
		})
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write data", err)
		}

		written++

		daysElapsed := barTime.Sub(startDate).Hours() / 24
		reportProgress(onProgress, daysElapsed, totalDays, message)
		_ = bar.Set(int(max(daysElapsed, 0)))
	}

	if iterErr := bars.Err(); iterErr != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "error iterating yahoo chart", iterErr)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	_ = bar.Finish()

	c.logger.Info("Finished downloading",
		zap.String("ticker", ticker),
		zap.Int("bars", written),
	)

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}

// convertTimespanToYahooInterval converts the polygon timespan and multiplier to a Yahoo chart interval.
// Yahoo intervals: 1m, 2m, 5m, 15m, 30m, 60m, 90m, 1h, 1d, 5d, 1wk, 1mo, 3mo
func convertTimespanToYahooInterval(timespan models.Timespan, multiplier int) (datetime.Interval, error) {
	switch timespan {
	case models.Minute:
		switch multiplier {
		case 1, 2, 5, 15, 30, 60, 90:
			return datetime.Interval(fmt.Sprintf("%dm", multiplier)), nil
		}
	case models.Hour:
		if multiplier == 1 {
			return datetime.Interval("1h"), nil
		}
	case models.Day:
		switch multiplier {
		case 1:
			return datetime.OneDay, nil
		case 5:
			return datetime.Interval("5d"), nil
		}
	case models.Week:
		if multiplier == 1 {
			return datetime.Interval("1wk"), nil
		}
	case models.Month:
		switch multiplier {
		case 1, 3:
			return datetime.Interval(fmt.Sprintf("%dmo", multiplier)), nil
		}
	}

	return "", fmt.Errorf("unsupported interval for Yahoo Finance: %d %s", multiplier, timespan)
}
