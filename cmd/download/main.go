package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/rxtech-lab/argo-dataset/pkg/marketdata"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// downloadParams turns the positional arguments and flags into download parameters.
// START and END are required in period mode and ignored in live mode.
func downloadParams(cmd *cli.Command) (marketdata.DownloadParams, error) {
	args := cmd.Args()
	if args.Len() < 1 {
		return marketdata.DownloadParams{}, errors.New(errors.ErrCodeMissingParameter, "TICKER argument is required")
	}

	mode := marketdata.Mode(strings.ToLower(cmd.String("mode")))
	if mode != marketdata.ModePeriod && mode != marketdata.ModeLive {
		return marketdata.DownloadParams{}, errors.Newf(errors.ErrCodeInvalidMode, "invalid mode %q, expected l or p", cmd.String("mode"))
	}

	startDate, err := parseDateArg(args.Get(1), "START")
	if err != nil {
		return marketdata.DownloadParams{}, err
	}

	endDate, err := parseDateArg(args.Get(2), "END")
	if err != nil {
		return marketdata.DownloadParams{}, err
	}

	if mode == marketdata.ModePeriod && (startDate.IsZero() || endDate.IsZero()) {
		return marketdata.DownloadParams{}, errors.New(errors.ErrCodeMissingParameter, "for mode 'p', both START and END dates are required")
	}

	interval := marketdata.Timespan(cmd.String("interval"))

	return marketdata.DownloadParams{
		Ticker:     strings.ToUpper(args.Get(0)),
		Mode:       mode,
		StartDate:  startDate,
		EndDate:    endDate,
		Period:     cmd.String("period"),
		Multiplier: interval.Multiplier(),
		Timespan:   interval.Timespan(),
	}, nil
}

func parseDateArg(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid %s date %q, expected YYYY-MM-DD", name, value)
	}

	return t, nil
}

// downloadAction is the core logic executed by the CLI command.
// It parses arguments, sets up the market data client, and starts the download process.
func downloadAction(log *logger.Logger) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		params, err := downloadParams(cmd)
		if err != nil {
			return err
		}

		clientConfig := marketdata.ClientConfig{
			ProviderType:  marketdata.ProviderType(cmd.String("provider")),
			WriterType:    marketdata.WriterType(cmd.String("writer")),
			DataPath:      cmd.String("data"),
			PolygonApiKey: os.Getenv("POLYGON_API_KEY"),
		}

		client, err := marketdata.NewClient(clientConfig, nil, log)
		if err != nil {
			return err
		}

		path, err := client.Download(ctx, params)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.Root().Writer, "Downloaded data to %s\n", path)

		return nil
	}
}

func newCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "Download OHLCV market data to a spreadsheet or parquet file",
		ArgsUsage: "TICKER [START] [END]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "l for live (trailing period ending now) or p for period (START to END)",
				Value:   string(marketdata.ModeLive),
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage: fmt.Sprintf("Data provider to use (%s, %s, %s)",
					marketdata.ProviderYahoo, marketdata.ProviderPolygon, marketdata.ProviderBinance),
				Value: string(marketdata.ProviderYahoo),
			},
			&cli.StringFlag{
				Name:    "writer",
				Aliases: []string{"w"},
				Usage:   fmt.Sprintf("Output format (%s, %s)", marketdata.WriterExcel, marketdata.WriterDuckDB),
				Value:   string(marketdata.WriterExcel),
			},
			&cli.StringFlag{
				Name:  "period",
				Usage: "Trailing window in live mode (e.g. 1d, 5d, 2wk, 6mo, 1y)",
				Value: marketdata.DefaultLivePeriod,
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Bar interval (e.g. 1m, 1h, 1d)",
				Value:   string(marketdata.TimespanOneDay),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the data output directory",
				Value:   ".",
			},
		},
		Action: downloadAction(log),
	}
}

func main() {
	log, err := logger.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	err = newCommand(log).Run(context.Background(), os.Args)
	if err != nil {
		log.Error("Download failed", zap.Error(err))
	}

	_ = log.Sync()

	if err != nil {
		os.Exit(1)
	}
}
