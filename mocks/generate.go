package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-dataset/pkg/marketdata/provider Provider
//go:generate mockgen -destination=./mock_writer.go -package=mocks github.com/rxtech-lab/argo-dataset/pkg/marketdata/writer MarketDataWriter
//go:generate mockgen -destination=./mock_source.go -package=mocks github.com/rxtech-lab/argo-dataset/internal/datasource Source
//go:generate mockgen -destination=./mock_exporter.go -package=mocks github.com/rxtech-lab/argo-dataset/internal/exporter Exporter
