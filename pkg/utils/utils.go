package utils

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// GetSchemaFromConfig reflects config into a JSON schema. Definitions are
// inlined so the schema can be rendered as a standalone form.
func GetSchemaFromConfig(config any) (string, error) {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(config)

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to encode schema", err)
	}

	return string(schemaBytes), nil
}
