package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// WorkspaceMarkers are the directory names that identify a workspace root:
// the folder holding envault config files and the folder holding local state.
var WorkspaceMarkers = []string{"envault", ".envault"}

// FindWorkspaceRoot traverses up from the working directory to find the
// nearest directory containing one of the WorkspaceMarkers.
// Returns the path to the workspace root if found, empty string otherwise.
// Stops searching when it reaches the user's home directory.
func FindWorkspaceRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return FindWorkspaceRootFrom(currentDir)
}

// FindWorkspaceRootFrom is FindWorkspaceRoot starting at dir.
func FindWorkspaceRootFrom(dir string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	currentDir := dir
	for {
		// Stop searching at one level above home directory
		if currentDir == path.Join(homeDir, "..") {
			return "", nil
		}

		for _, marker := range WorkspaceMarkers {
			info, err := os.Stat(filepath.Join(currentDir, marker))
			if err == nil {
				if info.IsDir() {
					return currentDir, nil
				}
			} else if !os.IsNotExist(err) {
				return "", fmt.Errorf("error checking for %s directory at %s: %w", marker, currentDir, err)
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// SamePath reports whether two paths refer to the same cleaned absolute location.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// RelOrAbs returns path relative to base when it lies beneath base, and path unchanged otherwise.
func RelOrAbs(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
