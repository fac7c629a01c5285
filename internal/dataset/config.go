package dataset

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

const (
	// DefaultForwardWindow is the number of future rows examined when labeling.
	DefaultForwardWindow = 3
	// LongestWindow is the longest rolling window used by the features.
	LongestWindow = 20
)

// Config holds the builder parameters.
type Config struct {
	ForwardWindow int `yaml:"forward_window" json:"forward_window" jsonschema:"title=Forward Window,description=Number of future rows used to label each row,minimum=1,default=3" validate:"required,min=1"`
}

// DefaultConfig returns the builder defaults.
func DefaultConfig() Config {
	return Config{
		ForwardWindow: DefaultForwardWindow,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidForwardWindow, err, "invalid forward window %d", c.ForwardWindow)
	}

	return nil
}

// MinimumRows is the smallest input that yields at least one labeled row.
func (c Config) MinimumRows() int {
	return LongestWindow + c.ForwardWindow
}
