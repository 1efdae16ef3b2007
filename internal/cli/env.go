package cli

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileOverrideVar names a .env file that wins over the --env flag.
const EnvFileOverrideVar = "TRANSLATOR_ENV_FILE"

// EnvLoader loads .env files with a predictable override order.
type EnvLoader struct {
	value       *string
	defaultPath string
}

// AddEnvFlag registers an --env flag and returns an EnvLoader.
func AddEnvFlag(fs *flag.FlagSet, defaultPath, description string) *EnvLoader {
	if fs == nil {
		fs = flag.CommandLine
	}
	if defaultPath == "" {
		defaultPath = ".env"
	}
	if description == "" {
		description = "Path to the .env file"
	}

	value := fs.String("env", defaultPath, description)
	return &EnvLoader{
		value:       value,
		defaultPath: defaultPath,
	}
}

// Load resolves and loads environment variables using the configured flag value.
// It returns the loaded path, or "" when the default file does not exist.
// Values already present in the process environment are overridden.
func (l *EnvLoader) Load() (string, error) {
	if l == nil {
		return "", fmt.Errorf("env loader is nil")
	}

	if custom := strings.TrimSpace(os.Getenv(EnvFileOverrideVar)); custom != "" {
		if err := godotenv.Overload(custom); err != nil {
			return "", fmt.Errorf("load %s=%s: %w", EnvFileOverrideVar, custom, err)
		}
		return custom, nil
	}

	requested := strings.TrimSpace(derefString(l.value))
	if requested == "" {
		requested = l.defaultPath
	}

	err := godotenv.Overload(requested)
	if err == nil {
		return requested, nil
	}

	base := filepath.Base(requested)
	if base != "" && base != requested {
		if baseErr := godotenv.Overload(base); baseErr == nil {
			return base, nil
		}
	}

	if requested == l.defaultPath && errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return "", fmt.Errorf("failed to load env file from %s: %w", requested, err)
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
