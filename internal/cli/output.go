package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// console writes status messages: progress plain, success green, warnings
// yellow. Colour is only used when the writer is a terminal.
type console struct {
	w       io.Writer
	success *color.Color
	warning *color.Color
}

func newConsole(w io.Writer, getenv func(string) string) *console {
	c := &console{
		w:       w,
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
	}
	if shouldColorize(w) && getenv("NO_COLOR") == "" {
		c.success.EnableColor()
		c.warning.EnableColor()
	} else {
		c.success.DisableColor()
		c.warning.DisableColor()
	}
	return c
}

// Progressf writes a plain progress line.
func (c *console) Progressf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format+"\n", args...)
}

// Successf writes a success line.
func (c *console) Successf(format string, args ...any) {
	_, _ = c.success.Fprintf(c.w, format+"\n", args...)
}

// Warnf writes a warning line prefixed with "Warning: ".
func (c *console) Warnf(format string, args ...any) {
	_, _ = c.warning.Fprintf(c.w, "Warning: "+format+"\n", args...)
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// outputExists reports whether path already exists.
func outputExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// writeOutput creates path and fills it with write.
// Without force it fails if the file already exists (O_EXCL), preventing
// accidental overwrites. On write failure, the partial file is removed.
func writeOutput(path string, force bool, write func(io.Writer) error) error {
	flags := os.O_CREATE | os.O_WRONLY
	if force {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}

	// #nosec G302 G304 -- user-specified output file with standard permissions
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrOutputExists, path)
		}
		return fmt.Errorf("cannot create output file: %w", err)
	}

	writeErr := write(f)
	closeErr := f.Close()
	if writeErr == nil && closeErr != nil {
		writeErr = fmt.Errorf("failed to write output: %w", closeErr)
	}
	if writeErr != nil {
		_ = os.Remove(path)
		return writeErr
	}
	return nil
}
