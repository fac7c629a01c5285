// Package marketdata downloads OHLCV price data from a provider and stores it
// with a writer.
package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/rxtech-lab/argo-dataset/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-dataset/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
	ProviderYahoo   ProviderType = "yahoo"
)

// WriterType defines the type of market data writer.
type WriterType string

const (
	WriterExcel  WriterType = "excel"
	WriterDuckDB WriterType = "duckdb"
)

// Mode selects how the download window is chosen.
type Mode string

const (
	// ModePeriod downloads between an explicit start and end date.
	ModePeriod Mode = "p"
	// ModeLive downloads the trailing Period ending now. Explicit dates are ignored.
	ModeLive Mode = "l"
)

const fileDateFormat = "2006-01-02"

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  ProviderType `validate:"required,oneof=polygon binance yahoo"`
	WriterType    WriterType   `validate:"required,oneof=excel duckdb"`
	DataPath      string       `validate:"required"`
	PolygonApiKey string       `validate:"required_if=ProviderType polygon"`
}

// DownloadParams holds the parameters for a market data download request.
type DownloadParams struct {
	Ticker     string `validate:"required"`
	Mode       Mode   `validate:"required,oneof=p l"`
	StartDate  time.Time
	EndDate    time.Time
	Period     string
	Multiplier int             `validate:"required,min=1"`
	Timespan   models.Timespan `validate:"required"`
}

// Window returns the date range to download. In period mode both dates are
// required and end must be after start. In live mode the window is the
// trailing Period (DefaultLivePeriod when empty) ending at now.
func (p DownloadParams) Window(now time.Time) (time.Time, time.Time, error) {
	switch p.Mode {
	case ModePeriod:
		if p.StartDate.IsZero() || p.EndDate.IsZero() {
			return time.Time{}, time.Time{}, errors.New(errors.ErrCodeMissingParameter, "both start and end dates are required in period mode")
		}

		if !p.EndDate.After(p.StartDate) {
			return time.Time{}, time.Time{}, errors.Newf(errors.ErrCodeInvalidParameter,
				"end date %s must be after start date %s", p.EndDate.Format(fileDateFormat), p.StartDate.Format(fileDateFormat))
		}

		return p.StartDate, p.EndDate, nil
	case ModeLive:
		periodText := p.Period
		if periodText == "" {
			periodText = DefaultLivePeriod
		}

		period, err := ParsePeriod(periodText)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		return period.Start(now), now, nil
	default:
		return time.Time{}, time.Time{}, errors.Newf(errors.ErrCodeInvalidMode, "unsupported download mode %q, expected p or l", p.Mode)
	}
}

// Client is the market data client responsible for downloading data from providers and storing it using writers.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
	logger     *logger.Logger
	now        func() time.Time
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, onProgress provider.OnDownloadProgress, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	marketProvider, err := provider.NewMarketDataProvider(provider.ProviderType(config.ProviderType), config.PolygonApiKey)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	marketProvider.ConfigLogger(log)

	return &Client{
		provider:   marketProvider,
		config:     config,
		validate:   validate,
		onProgress: onProgress,
		logger:     log,
		now:        time.Now,
	}, nil
}

// Download validates params, resolves the download window and runs the
// provider. It returns the path of the written file.
// The context can be used to cancel the download operation.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	if params.Mode == ModeLive && (!params.StartDate.IsZero() || !params.EndDate.IsZero()) {
		c.logger.Info("Dates are not used in live mode and will be ignored",
			zap.String("ticker", params.Ticker),
		)
	}

	startDate, endDate, err := params.Window(c.clock())
	if err != nil {
		return "", err
	}

	marketWriter, err := c.setupWriter(params, startDate, endDate)
	if err != nil {
		return "", err
	}

	c.provider.ConfigWriter(marketWriter)

	c.logger.Info("Downloading market data",
		zap.String("ticker", params.Ticker),
		zap.String("provider", string(c.config.ProviderType)),
		zap.String("mode", string(params.Mode)),
		zap.Time("start", startDate),
		zap.Time("end", endDate),
	)

	path, err := c.provider.Download(
		ctx,
		params.Ticker,
		startDate,
		endDate,
		params.Multiplier,
		params.Timespan,
		c.onProgress,
	)
	if err != nil {
		return "", err
	}

	c.logger.Info("Market data saved", zap.String("path", path))

	return path, nil
}

func (c *Client) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}

	return c.now()
}

// OutputFileName builds TICKER_data_START_END_MODE_INTERVAL with the
// extension of the writer type.
func OutputFileName(params DownloadParams, writerType WriterType, startDate, endDate time.Time) string {
	extension := "xlsx"
	if writerType == WriterDuckDB {
		extension = "parquet"
	}

	return fmt.Sprintf("%s_data_%s_%s_%s_%d%s.%s",
		params.Ticker,
		startDate.Format(fileDateFormat),
		endDate.Format(fileDateFormat),
		params.Mode,
		params.Multiplier,
		params.Timespan,
		extension)
}

// setupWriter creates the market data writer for the configured writer type.
// The provider initializes and closes it.
func (c *Client) setupWriter(params DownloadParams, startDate, endDate time.Time) (writer.MarketDataWriter, error) {
	if err := os.MkdirAll(c.config.DataPath, 0o755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create data directory %s", c.config.DataPath)
	}

	outputPath := filepath.Join(c.config.DataPath, OutputFileName(params, c.config.WriterType, startDate, endDate))

	switch c.config.WriterType {
	case WriterExcel:
		return writer.NewExcelWriter(outputPath, params.Ticker, c.logger), nil
	case WriterDuckDB:
		return writer.NewDuckDBWriter(outputPath, c.logger), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported writer type: %s", c.config.WriterType)
	}
}
