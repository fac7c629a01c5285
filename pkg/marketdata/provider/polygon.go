package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/iter"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/rxtech-lab/argo-dataset/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// PolygonAggsIterator iterates over aggregate bars.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the part of the Polygon REST client used for downloads.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

// polygonClientWrapper adapts *polygon.Client to PolygonAPIClient.
type polygonClientWrapper struct {
	client *polygon.Client
}

func (w *polygonClientWrapper) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return &polygonIterWrapper{iter: w.client.ListAggs(ctx, params, options...)}
}

type polygonIterWrapper struct {
	iter *iter.Iter[models.Agg]
}

func (w *polygonIterWrapper) Next() bool       { return w.iter.Next() }
func (w *polygonIterWrapper) Item() models.Agg { return w.iter.Item() }
func (w *polygonIterWrapper) Err() error       { return w.iter.Err() }

type PolygonClient struct {
	apiClient PolygonAPIClient
	writer    writer.MarketDataWriter
	logger    *logger.Logger
}

func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey is required")
	}

	return NewPolygonClientWithAPI(&polygonClientWrapper{client: polygon.New(apiKey)}), nil
}

// NewPolygonClientWithAPI creates a Polygon provider on top of apiClient.
func NewPolygonClientWithAPI(apiClient PolygonAPIClient) *PolygonClient {
	return &PolygonClient{
		apiClient: apiClient,
		writer:    nil,
		logger:    logger.NewNopLogger(),
	}
}

func (c *PolygonClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

func (c *PolygonClient) ConfigLogger(log *logger.Logger) {
	if log != nil {
		c.logger = log
	}
}

func (c *PolygonClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (path string, err error) {
	if c.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "no writer configured for PolygonClient. Call ConfigWriter first")
	}

	err = c.writer.Initialize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer", err)
	}

	processedCount := 0

	defer func() {
		closeWriter(c.writer, &err, c.logger)

		if err != nil {
			removeEmptyOutput(c.writer, processedCount, c.logger)
		}
	}()

	totalDays := endDate.Sub(startDate).Hours() / 24
	message := fmt.Sprintf("Downloading %s", ticker)
	bar := newProgressBar(int(totalDays)+1, message)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(startDate),
		To:         models.Millis(endDate),
	}.WithLimit(50000)

	aggs := c.apiClient.ListAggs(ctx, params)

	for aggs.Next() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		agg := aggs.Item()
		barTime := time.Time(agg.Timestamp)

		err = c.writer.Write(types.MarketData{
			Id:     "",
			Symbol: ticker,
			Time:   barTime,
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write data", err)
		}

		processedCount++

		daysElapsed := barTime.Sub(startDate).Hours() / 24
		reportProgress(onProgress, daysElapsed, totalDays, message)

		if processedCount%1000 == 0 {
			_ = bar.Set(int(daysElapsed))
		}
	}

	if iterErr := aggs.Err(); iterErr != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "error iterating polygon aggregates", iterErr)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	_ = bar.Finish()

	c.logger.Info("Finished downloading",
		zap.String("ticker", ticker),
		zap.Int("bars", processedCount),
	)

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}
