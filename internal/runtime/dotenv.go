// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads a dotenv file and merges its contents into env.
// Relative paths are resolved against cwd; an empty cwd means the current
// working directory. Paths suffixed with '?' are optional and a missing
// optional file is not an error. Later calls override earlier values.
func LoadEnvFile(env map[string]string, path, cwd string) error {
	optional := strings.HasSuffix(path, "?")
	if optional {
		path = strings.TrimSuffix(path, "?")
	}

	fullPath := filepath.FromSlash(path)
	if !filepath.IsAbs(fullPath) {
		if cwd == "" {
			var err error
			cwd, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current working directory: %w", err)
			}
		}
		fullPath = filepath.Join(cwd, fullPath)
	}

	vars, err := godotenv.Read(fullPath)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read env file '%s': %w", path, err)
	}

	maps.Copy(env, vars)
	return nil
}

// ParseEnvFile parses dotenv content and merges it into env. The filename
// is only used in error messages.
func ParseEnvFile(env map[string]string, content []byte, filename string) error {
	vars, err := godotenv.Unmarshal(string(content))
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	maps.Copy(env, vars)
	return nil
}
