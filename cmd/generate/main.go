package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-dataset/internal/config"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const (
	schemaName       = "dataset-build-config.json"
	sampleConfigName = "dataset-build-config.yaml"
)

func main() {
	log, err := logger.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	defer func() { _ = log.Sync() }()

	schemaPath := filepath.Join("./config", schemaName)
	sampleConfigPath := filepath.Join("./config", sampleConfigName)

	if err := validatePaths(schemaPath, sampleConfigPath); err != nil {
		log.Fatal("Invalid output paths", zap.Error(err))
	}

	if err := validateSchemaName(schemaName); err != nil {
		log.Fatal("Invalid schema name", zap.Error(err))
	}

	cfg := sampleConfig()

	if err := generateSchemaFile(cfg, schemaPath); err != nil {
		log.Fatal("Failed to generate schema", zap.Error(err))
	}

	log.Info("Schema successfully generated", zap.String("path", schemaPath))

	if err := generateSampleConfig(cfg, sampleConfigPath, schemaName); err != nil {
		log.Fatal("Failed to generate sample config", zap.Error(err))
	}
}

// sampleConfig is the default config with example paths filled in.
func sampleConfig() config.Config {
	cfg := config.EmptyConfig()
	cfg.Input = "data/AAPL_data.xlsx"
	cfg.Output = "data/AAPL_labeled.xlsx"

	return cfg
}

func generateSchemaFile(cfg config.Config, schemaPath string) error {
	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(schemaPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	return nil
}

// generateSampleConfig writes the sample config unless the file already exists.
func generateSampleConfig(cfg config.Config, sampleConfigPath string, schemaName string) error {
	if _, err := os.Stat(sampleConfigPath); !os.IsNotExist(err) {
		return nil
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	yamlBytes = append([]byte(getSchemaReference(schemaName)), yamlBytes...)

	if err := os.MkdirAll(filepath.Dir(sampleConfigPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(sampleConfigPath, yamlBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write sample config to file: %w", err)
	}

	return nil
}

func validatePaths(schemaPath, sampleConfigPath string) error {
	if schemaPath == "" {
		return fmt.Errorf("schema path cannot be empty")
	}

	if sampleConfigPath == "" {
		return fmt.Errorf("sample config path cannot be empty")
	}

	return nil
}

func validateSchemaName(name string) error {
	if name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	if !strings.HasSuffix(name, ".json") {
		return fmt.Errorf("schema name %q must have .json extension", name)
	}

	return nil
}

func getSchemaReference(schemaName string) string {
	return "# yaml-language-server: $schema=" + schemaName + "\n"
}
