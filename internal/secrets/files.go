package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/envault/internal/errors"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// ConfigFolder is the folder, directly inside a workspace folder, holding config files.
	ConfigFolder = "envault"

	// ConfigExtension is the extension every config file must have.
	ConfigExtension = ".yml"
)

// configPattern matches config file names after lower-casing.
var configPattern = "*" + ConfigExtension

// invalidNameChars are characters invalid in a file name on at least one platform.
const invalidNameChars = `/<>:"\|?*`

const configTemplate = `# Envault to request keys from, and the API key to use to authenticate the
# request. The API key provided here specifies the name of an environment
# variable whose value is the actual API key to use.
apiKeyName: %s
url: %s

# The list of variable specifications to request from the server; each spec
# will produce some number of environment variables and values. See the
# Envault server documentation for more information.
vars: []
#  - spec1
#  - spec2
`

// ScanFolder returns the config files directly inside path, sorted.
// The extension match is case-insensitive.
func ScanFolder(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		match, err := doublestar.Match(configPattern, strings.ToLower(entry.Name()))
		if err != nil {
			return nil, err
		}
		if match {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// ScanWorkspace returns the config files of every workspace folder that has
// an envault folder. Files are not validated.
func ScanWorkspace(folders []string) ([]string, error) {
	var files []string
	for _, folder := range folders {
		configDir := filepath.Join(folder, ConfigFolder)
		info, err := os.Stat(configDir)
		if err != nil || !info.IsDir() {
			continue
		}

		found, err := ScanFolder(configDir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// ValidConfigName reports whether name can be used as a config file name.
func ValidConfigName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && !strings.ContainsAny(name, invalidNameChars)
}

// ConfigPath returns the path of config name inside folder. Any extension
// on name is replaced with ConfigExtension.
func ConfigPath(folder, name string) string {
	base := strings.TrimSpace(strings.TrimSuffix(name, filepath.Ext(name)))
	return filepath.Join(folder, ConfigFolder, base+ConfigExtension)
}

// RenderTemplate returns the contents of a new config file.
func RenderTemplate(apiKeyName, url string) string {
	return fmt.Sprintf(configTemplate, apiKeyName, url)
}

// CreateConfig writes a new config file from the template, creating the
// config folder if needed. An existing file is only replaced when force is set.
func CreateConfig(path, apiKeyName, url string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, kerrors.ErrConfigExists)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	// #nosec G306 -- config files hold variable names only, never values.
	if err := os.WriteFile(path, []byte(RenderTemplate(apiKeyName, url)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
