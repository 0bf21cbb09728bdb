package secrets

import (
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/envault/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config is a validated envault config file.
type Config struct {
	// APIKeyName names the environment variable holding the service API key.
	APIKeyName string `yaml:"apiKeyName" json:"apiKeyName"`

	// URL is the base URL of the variable service.
	URL string `yaml:"url" json:"url"`

	// Vars are the variable specs to request. The service decides which
	// variables each spec expands to.
	Vars []string `yaml:"vars" json:"vars"`
}

// ValidateConfig checks a decoded YAML document against the config schema
// and returns a Config holding only the known keys.
func ValidateConfig(path string, doc any) (*Config, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: config must be a mapping of keys to values: %w", path, kerrors.ErrInvalidConfig)
	}

	apiKeyName, ok := m["apiKeyName"].(string)
	if !ok {
		return nil, fmt.Errorf("%s: apiKeyName must exist and be a string: %w", path, kerrors.ErrInvalidConfig)
	}

	url, ok := m["url"].(string)
	if !ok {
		return nil, fmt.Errorf("%s: url must exist and be a string: %w", path, kerrors.ErrInvalidConfig)
	}

	rawVars, ok := m["vars"].([]any)
	if !ok {
		return nil, fmt.Errorf("%s: vars must exist and be a list of key strings: %w", path, kerrors.ErrInvalidConfig)
	}

	vars := make([]string, 0, len(rawVars))
	for _, v := range rawVars {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: vars must exist and be a list of key strings: %w", path, kerrors.ErrInvalidConfig)
		}
		vars = append(vars, s)
	}

	return &Config{
		APIKeyName: apiKeyName,
		URL:        url,
		Vars:       vars,
	}, nil
}

// ParseConfig decodes and validates config file contents.
func ParseConfig(path string, data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, kerrors.ErrInvalidConfig)
	}
	return ValidateConfig(path, doc)
}

// LoadIfExists loads and validates the config file at path.
//
// Returns ErrConfigNotFound if the file does not exist and ErrInvalidConfig
// if it fails to parse or does not conform to the config schema.
func LoadIfExists(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file '%s' does not exist: %w", path, kerrors.ErrConfigNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}

	return ParseConfig(path, data)
}
