package config

import "errors"

// ErrUnknownKey indicates a config key that the tool does not read.
var ErrUnknownKey = errors.New("unknown config key")

// ErrInvalidValue indicates a config value that fails validation for its key.
var ErrInvalidValue = errors.New("invalid config value")

// ErrNotDirectory indicates the output-dir path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrNotWritable indicates the output-dir cannot be written to.
var ErrNotWritable = errors.New("directory is not writable")

// ErrInvalidKey indicates a key that cannot be stored in the key=value file.
var ErrInvalidKey = errors.New("invalid config key")

// ErrInvalidSyntax indicates a config file line that is not key=value.
var ErrInvalidSyntax = errors.New("invalid config syntax")
