package utils

import (
	"os"
	"path/filepath"
)

// ExecutableName is the name the binary was invoked as, for help text.
func ExecutableName() string {
	executable, err := os.Executable()
	if err != nil {
		return "padpaint"
	}
	return filepath.Base(executable)
}
