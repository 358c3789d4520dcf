package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveOutputPath picks where the SRT goes. An absolute output is used as
// is, a relative one is placed under outputDir when set. Without output,
// the base name of defaultName goes into outputDir, or defaultName is kept.
func ResolveOutputPath(output, outputDir, defaultName string) string {
	switch {
	case output != "" && (filepath.IsAbs(output) || outputDir == ""):
		return filepath.Clean(output)
	case output != "":
		return filepath.Join(outputDir, output)
	case outputDir != "":
		return filepath.Join(outputDir, filepath.Base(defaultName))
	default:
		return filepath.Clean(defaultName)
	}
}

// EnsureOutputDir creates d when missing, otherwise checks it is a
// directory the process can create files in.
func EnsureOutputDir(d string) error {
	if d == "" {
		return fmt.Errorf("%w: output-dir cannot be empty", ErrInvalidValue)
	}
	d = ExpandPath(d)

	info, err := os.Stat(d)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user output dir
			return fmt.Errorf("cannot create directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, d)
	}

	tmp, err := os.CreateTemp(d, "."+appName+"-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, d, err)
	}
	_ = tmp.Close()
	_ = os.Remove(tmp.Name())
	return nil
}

// ExpandPath replaces a leading "~" or "~/" with the home directory.
// p is returned unchanged when the home directory is unknown.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
