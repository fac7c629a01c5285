// Package provider downloads OHLCV bars from market data providers.
package provider

import (
	"context"
	"os"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/rxtech-lab/argo-dataset/pkg/marketdata/writer"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
	ProviderYahoo   ProviderType = "yahoo"
)

type OnDownloadProgress = func(current float64, total float64, message string)

type Provider interface {
	// ConfigWriter configures the writer for the provider
	// Writer is used to write the market data to a file.
	ConfigWriter(writer writer.MarketDataWriter)
	// ConfigLogger sets the logger used for download progress.
	ConfigLogger(log *logger.Logger)
	// Download downloads the data for the given ticker and date range.
	// The context can be used to cancel the download operation.
	// example:
	// Download(ctx, "AAPL", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC), 1, models.Day, onProgress)
	Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (path string, err error)
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
func NewMarketDataProvider(providerType ProviderType, config any) (Provider, error) {
	switch providerType {
	case ProviderBinance:
		return NewBinanceClient()
	case ProviderYahoo:
		return NewYahooClient()
	case ProviderPolygon:
		apiKey, ok := config.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidProvider, "polygon provider requires API key string config")
		}

		return NewPolygonClient(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

func reportProgress(onProgress OnDownloadProgress, current float64, total float64, message string) {
	if onProgress == nil {
		return
	}

	onProgress(min(current, total), total, message)
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max(total, 1),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
	)
}

// removeEmptyOutput deletes the writer's output file when a download failed
// before any bar was written.
func removeEmptyOutput(w writer.MarketDataWriter, written int, log *logger.Logger) {
	if written > 0 {
		return
	}

	path := w.GetOutputPath()
	if path == "" {
		return
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("Failed to remove empty output", zap.String("path", path), zap.Error(err))
	}
}

// closeWriter closes w and reports a close failure unless err is already set.
func closeWriter(w writer.MarketDataWriter, err *error, log *logger.Logger) {
	cerr := w.Close()
	if cerr == nil {
		return
	}

	if *err == nil {
		*err = errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "error closing writer", cerr)
		return
	}

	log.Warn("Error closing writer after another error", zap.Error(cerr))
}
