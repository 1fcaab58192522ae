package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	lzerrors "github.com/gxo-labs/logzen/pkg/logzen/v1/errors"
)

// SupportedSchemaVersionMajor is the schemaVersion major this build accepts.
const SupportedSchemaVersionMajor = "v1"

// LoadConfig validates configYAML against the embedded schema, decodes it
// strictly, checks schemaVersion and validates category and level names.
// Fields missing from the file keep their Default values.
func LoadConfig(configYAML []byte, filePathHint string) (*Config, error) {
	if len(bytes.TrimSpace(configYAML)) == 0 {
		return nil, lzerrors.NewConfigError(fmt.Sprintf("config '%s' is empty", filePathHint), nil)
	}

	if err := ValidateWithSchema(configYAML); err != nil {
		return nil, lzerrors.NewConfigError(fmt.Sprintf("config '%s' failed schema validation", filePathHint), err)
	}

	cfg := Default()
	if err := yamlUnmarshalStrict(configYAML, cfg); err != nil {
		return nil, lzerrors.NewConfigError(fmt.Sprintf("failed to parse config YAML '%s'", filePathHint), err)
	}
	cfg.FilePath = filePathHint

	if err := checkSchemaVersion(cfg.SchemaVersion, filePathHint); err != nil {
		return nil, err
	}

	if errs := Validate(cfg); len(errs) > 0 {
		messages := make([]string, 0, len(errs))
		for _, e := range errs {
			messages = append(messages, e.Error())
		}
		return nil, lzerrors.NewValidationError(
			fmt.Sprintf("config '%s' has %d validation error(s):\n- %s", filePathHint, len(errs), strings.Join(messages, "\n- ")),
			errs[0],
		)
	}
	return cfg, nil
}

// LoadConfigFromFile reads and loads the config at filePath.
func LoadConfigFromFile(filePath string) (*Config, error) {
	if filePath == "" {
		return nil, lzerrors.NewConfigError("config file path cannot be empty", nil)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, lzerrors.NewConfigError(fmt.Sprintf("failed to get absolute path for '%s'", filePath), err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, lzerrors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", absPath), err)
	}
	return LoadConfig(data, absPath)
}

func checkSchemaVersion(version, filePathHint string) error {
	if version == "" {
		return lzerrors.NewValidationError(fmt.Sprintf("config '%s' is missing required 'schemaVersion' field", filePathHint), nil)
	}
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return lzerrors.NewValidationError(fmt.Sprintf("config '%s' has invalid 'schemaVersion' format: '%s'", filePathHint, version), nil)
	}
	if semver.Major(v) != SupportedSchemaVersionMajor {
		return lzerrors.NewValidationError(
			fmt.Sprintf("config '%s' schemaVersion '%s' is not compatible with required '%s'", filePathHint, version, SupportedSchemaVersionMajor),
			nil,
		)
	}
	return nil
}

// yamlUnmarshalStrict rejects fields that Config does not declare.
func yamlUnmarshalStrict(in []byte, out interface{}) error {
	decoder := yaml.NewDecoder(bytes.NewReader(in))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("YAML parsing error: %w", err)
	}
	return nil
}
