package wrapper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type packageJSON struct {
	Module string `json:"module"`
}

// PackageModule returns the "module" entry of rootDir/package.json.
// A missing file or entry yields a *ConfigError wrapping ErrNoModulePath.
func PackageModule(rootDir string) (string, error) {
	file := filepath.Join(rootDir, "package.json")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &ConfigError{
				Msg: "You must define a module path in order to generate React wrappers",
				Err: fmt.Errorf("%w: %s not found", ErrNoModulePath, file),
			}
		}
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", file, err)
	}
	if strings.TrimSpace(pkg.Module) == "" {
		return "", &ConfigError{
			Msg: "You must define a module path in order to generate React wrappers",
			Err: fmt.Errorf("%w: %s has no \"module\" entry", ErrNoModulePath, file),
		}
	}
	return pkg.Module, nil
}

// relativeModulePath returns the import specifier of module (relative to
// rootDir) as seen from files in outDir.
func relativeModulePath(rootDir, outDir, module string) (string, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root dir: %w", err)
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output dir: %w", err)
	}
	rel, err := filepath.Rel(absOut, absRoot)
	if err != nil {
		return "", fmt.Errorf("failed to relate %s to %s: %w", outDir, rootDir, err)
	}

	p := path.Join(filepath.ToSlash(rel), module)
	if !strings.HasPrefix(p, "../") && !strings.HasPrefix(p, "./") {
		p = "./" + p
	}
	return p, nil
}
