package workflows

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envault/internal/configs"
)

// Status returns the status line for the current config, expanded from
// the status_bar_format setting. It is empty when the template is empty
// or no config is selected.
func (s *Session) Status() (string, error) {
	template := s.Prefs.StatusBarFormat
	if template == "" {
		return "", nil
	}

	if _, err := workspaceFolders(); err != nil {
		return "", err
	}
	current, err := configs.GetCurrentConfig()
	if err != nil || current == "" {
		return "", err
	}

	return ExpandStatus(template, current), nil
}

// StatusVariables returns the template variables describing file.
func StatusVariables(file string) map[string]string {
	filePath := filepath.Dir(file)
	fileName := filepath.Base(file)
	ext := filepath.Ext(fileName)

	return map[string]string{
		"file":           file,
		"folder":         filepath.Base(filepath.Dir(filePath)),
		"file_path":      filePath,
		"file_name":      fileName,
		"file_base_name": strings.TrimSuffix(fileName, ext),
		"file_extension": ext,
	}
}

// ExpandStatus expands ${name} and $name references in template with the
// variables describing file. Unknown names expand to "".
func ExpandStatus(template, file string) string {
	vars := StatusVariables(file)
	return os.Expand(template, func(name string) string {
		return vars[name]
	})
}
