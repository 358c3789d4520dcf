package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const appName = "go-subtitle"

// filePath is $XDG_CONFIG_HOME/go-subtitle/config, falling back to
// ~/.config/go-subtitle/config.
func filePath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName, "config"), nil
}

// List returns every key=value pair in the file, an empty map when the
// file does not exist.
func List() (map[string]string, error) {
	p, err := filePath()
	if err != nil {
		return nil, err
	}
	values, err := readFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	return values, err
}

// Get returns the stored value for key, "" when absent.
func Get(key string) (string, error) {
	values, err := List()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// Save stores key=value, keeping the other pairs. Comments in the file are
// not preserved.
func Save(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: value for %q contains a newline", ErrInvalidValue, key)
	}

	p, err := filePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	values, err := readFile(p)
	if err != nil {
		values = map[string]string{}
	}
	values[key] = value
	return writeFile(p, values)
}

// readFile parses "key = value" lines. Blank lines and # comments are skipped.
func readFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- path built from the config dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	values := map[string]string{}
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w at line %d: %q", ErrInvalidSyntax, n, line)
		}
		values[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return values, nil
}

// writeFile replaces the file with values sorted by key.
func writeFile(p string, values map[string]string) error {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(values)) {
		b.WriteString(k + "=" + values[k] + "\n")
	}
	if err := os.WriteFile(p, []byte(b.String()), 0644); err != nil { // #nosec G306 -- not a secret
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}
