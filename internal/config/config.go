// Package config holds the YAML configuration of the dataset build pipeline.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultSkipRows is the number of header rows above the data in a downloaded spreadsheet.
const DefaultSkipRows = 3

// Config describes one dataset build.
type Config struct {
	Input    string         `yaml:"input" json:"input" jsonschema:"title=Input,description=Raw price table to read (.xlsx or .parquet)" validate:"required"`
	Output   string         `yaml:"output" json:"output" jsonschema:"title=Output,description=Labeled table to write (.xlsx or .parquet)" validate:"required"`
	Sheet    string         `yaml:"sheet,omitempty" json:"sheet,omitempty" jsonschema:"title=Sheet,description=Spreadsheet sheet to read. Defaults to the first sheet"`
	SkipRows int            `yaml:"skip_rows" json:"skip_rows" jsonschema:"title=Skip Rows,description=Header rows above the data in a spreadsheet input,minimum=0,default=3" validate:"min=0"`
	Symbol   string         `yaml:"symbol,omitempty" json:"symbol,omitempty" jsonschema:"title=Symbol,description=Only read rows of this symbol from a parquet input"`
	Dataset  dataset.Config `yaml:"dataset" json:"dataset" jsonschema:"title=Dataset,description=Labeling parameters"`
}

// EmptyConfig returns a Config with default values.
func EmptyConfig() Config {
	return Config{
		Input:    "",
		Output:   "",
		SkipRows: DefaultSkipRows,
		Dataset:  dataset.DefaultConfig(),
	}
}

// Load reads a YAML config file. Unset fields keep their defaults.
func Load(path string) (Config, error) {
	config := EmptyConfig()

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return config, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	if err := yaml.Unmarshal(content, &config); err != nil {
		return config, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
	}

	return config, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Dataset.Validate(); err != nil {
		return err
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(c)

	schema.Title = "dataset-build-config"
	schema.Description = "Configuration schema for the labeled dataset build"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the Config
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
