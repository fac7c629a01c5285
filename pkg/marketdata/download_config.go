package marketdata

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// BaseDownloadConfig contains common fields for all download configurations.
type BaseDownloadConfig struct {
	Ticker    string `json:"ticker" jsonschema:"title=Ticker,description=The trading symbol to download data for (e.g. AAPL or BTCUSDT),required" validate:"required"`
	Mode      string `json:"mode" jsonschema:"title=Mode,description=p downloads between start and end date. l downloads the trailing period ending now,enum=p,enum=l,default=l" validate:"omitempty,oneof=p l"`
	StartDate string `json:"startDate,omitempty" jsonschema:"title=Start Date,description=Start date (period mode),format=date" validate:"required_if=Mode p"`
	EndDate   string `json:"endDate,omitempty" jsonschema:"title=End Date,description=End date (period mode),format=date" validate:"required_if=Mode p"`
	Period    string `json:"period,omitempty" jsonschema:"title=Period,description=Trailing window in live mode (e.g. 1d 5d 2wk 6mo 1y),default=1d"`
	Interval  string `json:"interval" jsonschema:"title=Interval,description=Data interval,required,enum=1s,enum=1m,enum=3m,enum=5m,enum=15m,enum=30m,enum=1h,enum=2h,enum=4h,enum=6h,enum=8h,enum=12h,enum=1d,enum=3d,enum=1w,enum=1M" validate:"required,oneof=1s 1m 3m 5m 15m 30m 1h 2h 4h 6h 8h 12h 1d 3d 1w 1M"`
	Writer    string `json:"writer,omitempty" jsonschema:"title=Writer,description=Output format,enum=excel,enum=duckdb,default=excel" validate:"omitempty,oneof=excel duckdb"`
}

// PolygonDownloadConfig contains configuration for downloading from Polygon.io.
type PolygonDownloadConfig struct {
	BaseDownloadConfig

	ApiKey string `json:"apiKey" jsonschema:"title=API Key,description=Polygon.io API key for authentication,required" validate:"required"`
}

// BinanceDownloadConfig contains configuration for downloading from Binance.
// Binance public market data API does not require authentication.
type BinanceDownloadConfig struct {
	BaseDownloadConfig
}

// YahooDownloadConfig contains configuration for downloading from Yahoo Finance.
// The chart API does not require authentication.
type YahooDownloadConfig struct {
	BaseDownloadConfig
}

// Validate validates the BaseDownloadConfig fields.
func (c *BaseDownloadConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if c.StartDate != "" {
		if _, err := parseConfigDate(c.StartDate); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid startDate format, expected YYYY-MM-DD or RFC3339", err)
		}
	}

	if c.EndDate != "" {
		if _, err := parseConfigDate(c.EndDate); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid endDate format, expected YYYY-MM-DD or RFC3339", err)
		}
	}

	if c.Period != "" {
		if _, err := ParsePeriod(c.Period); err != nil {
			return err
		}
	}

	return nil
}

// Validate validates the PolygonDownloadConfig.
func (c *PolygonDownloadConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return c.BaseDownloadConfig.Validate()
}

// Validate validates the BinanceDownloadConfig.
func (c *BinanceDownloadConfig) Validate() error {
	return c.BaseDownloadConfig.Validate()
}

// Validate validates the YahooDownloadConfig.
func (c *YahooDownloadConfig) Validate() error {
	return c.BaseDownloadConfig.Validate()
}

// ToDownloadParams converts a BaseDownloadConfig to DownloadParams.
func (c *BaseDownloadConfig) ToDownloadParams() (DownloadParams, error) {
	var startDate, endDate time.Time

	var err error

	if c.StartDate != "" {
		startDate, err = parseConfigDate(c.StartDate)
		if err != nil {
			return DownloadParams{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse startDate", err)
		}
	}

	if c.EndDate != "" {
		endDate, err = parseConfigDate(c.EndDate)
		if err != nil {
			return DownloadParams{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse endDate", err)
		}
	}

	mode := Mode(c.Mode)
	if mode == "" {
		mode = ModeLive
	}

	timespan := Timespan(c.Interval)

	return DownloadParams{
		Ticker:     c.Ticker,
		Mode:       mode,
		StartDate:  startDate,
		EndDate:    endDate,
		Period:     c.Period,
		Multiplier: timespan.Multiplier(),
		Timespan:   timespan.Timespan(),
	}, nil
}

func (c *BaseDownloadConfig) writerType() WriterType {
	if c.Writer == "" {
		return WriterExcel
	}

	return WriterType(c.Writer)
}

// ToClientConfig converts a PolygonDownloadConfig to ClientConfig.
func (c *PolygonDownloadConfig) ToClientConfig(dataPath string) ClientConfig {
	return ClientConfig{
		ProviderType:  ProviderPolygon,
		WriterType:    c.writerType(),
		DataPath:      dataPath,
		PolygonApiKey: c.ApiKey,
	}
}

// ToClientConfig converts a BinanceDownloadConfig to ClientConfig.
func (c *BinanceDownloadConfig) ToClientConfig(dataPath string) ClientConfig {
	return ClientConfig{
		ProviderType:  ProviderBinance,
		WriterType:    c.writerType(),
		DataPath:      dataPath,
		PolygonApiKey: "",
	}
}

// ToClientConfig converts a YahooDownloadConfig to ClientConfig.
func (c *YahooDownloadConfig) ToClientConfig(dataPath string) ClientConfig {
	return ClientConfig{
		ProviderType:  ProviderYahoo,
		WriterType:    c.writerType(),
		DataPath:      dataPath,
		PolygonApiKey: "",
	}
}

// ParsePolygonConfig parses JSON into a PolygonDownloadConfig.
func ParsePolygonConfig(jsonConfig string) (*PolygonDownloadConfig, error) {
	return parseDownloadConfig[PolygonDownloadConfig](jsonConfig)
}

// ParseBinanceConfig parses JSON into a BinanceDownloadConfig.
func ParseBinanceConfig(jsonConfig string) (*BinanceDownloadConfig, error) {
	return parseDownloadConfig[BinanceDownloadConfig](jsonConfig)
}

// ParseYahooConfig parses JSON into a YahooDownloadConfig.
func ParseYahooConfig(jsonConfig string) (*YahooDownloadConfig, error) {
	return parseDownloadConfig[YahooDownloadConfig](jsonConfig)
}

func parseDownloadConfig[T any, P interface {
	*T
	Validate() error
}](jsonConfig string) (*T, error) {
	var config T
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse JSON config", err)
	}

	if err := P(&config).Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func parseConfigDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, value)
}
