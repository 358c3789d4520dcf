package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-subtitle/internal/config"
	"github.com/alnah/go-subtitle/internal/subtitle"
)

// envFallbacks names the variable consulted when the file has no value.
var envFallbacks = map[string]string{
	config.KeyOutputDir:   config.EnvOutputDir,
	config.KeyGranularity: config.EnvGranularity,
}

// ConfigCmd builds "subtitle config" and its set, get and list children.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change saved defaults",
		Long: `Show or change the defaults stored in ~/.config/go-subtitle/config
($XDG_CONFIG_HOME/go-subtitle/config when set).

  output-dir    where SRT files go instead of next to the input
                (fallback: SUBTITLE_OUTPUT_DIR)
  granularity   word, segment or sentence
                (fallback: SUBTITLE_GRANULARITY)

Command-line flags always win over saved defaults.`,
		Example: `  subtitle config set output-dir ~/Videos/subtitles
  subtitle config set granularity sentence
  subtitle config get granularity
  subtitle config list`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "set <key> <value>",
			Short:   "Save a default",
			Long:    "Save a default. output-dir is created when missing and must be writable.",
			Example: "  subtitle config set granularity segment",
			Args:    cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return runConfigSet(env, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:     "get <key>",
			Short:   "Print one default",
			Long:    "Print the saved value, else its environment fallback, else nothing.",
			Example: "  subtitle config get output-dir",
			Args:    cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return runConfigGet(env, args[0])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print every default",
			Long:  "Print key=value for each default. Values taken from the environment are marked.",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runConfigList(env)
			},
		},
	)
	return cmd
}

// runConfigSet stores a normalized value: output-dir with ~ expanded,
// granularity in its canonical singular form.
func runConfigSet(env *Env, key, value string) error {
	if err := config.Validate(key, value); err != nil {
		return err
	}

	switch key {
	case config.KeyOutputDir:
		value = config.ExpandPath(value)
		if err := config.EnsureOutputDir(value); err != nil {
			return fmt.Errorf("invalid output-dir: %w", err)
		}
	case config.KeyGranularity:
		g, err := subtitle.ParseGranularity(value)
		if err != nil {
			return err
		}
		value = g.String()
	}

	if err := config.Save(key, value); err != nil {
		return err
	}
	newConsole(env.Stderr, env.Getenv).Successf("Set %s = %s", key, value)
	return nil
}

func runConfigGet(env *Env, key string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("%w: %q (valid keys: %s)", config.ErrUnknownKey, key, strings.Join(config.Keys(), ", "))
	}
	stored, err := config.Get(key)
	if err != nil {
		return err
	}
	if v, _ := effectiveValue(env, key, stored, true); v != "" {
		_, _ = fmt.Fprintln(env.Stdout, v)
	}
	return nil
}

func runConfigList(env *Env) error {
	stored, err := config.List()
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(stored))
	for key, v := range stored {
		if !isValidConfigKey(key) {
			lines = append(lines, key+"="+v)
		}
	}
	for _, key := range config.Keys() {
		v, ok := stored[key]
		v, fromEnv := effectiveValue(env, key, v, !ok)
		switch {
		case fromEnv:
			lines = append(lines, key+"="+v+" (from env)")
		case ok:
			lines = append(lines, key+"="+v)
		}
	}

	if len(lines) == 0 {
		_, _ = fmt.Fprintf(env.Stdout, "No configuration set.\n\nAvailable settings:\n  %s\n",
			strings.Join(config.Keys(), "\n  "))
		return nil
	}
	slices.Sort(lines)
	_, _ = fmt.Fprintln(env.Stdout, strings.Join(lines, "\n"))
	return nil
}

// effectiveValue falls back to the key's environment variable when the
// stored value is unset and fallback is allowed.
func effectiveValue(env *Env, key, stored string, fallback bool) (string, bool) {
	if stored != "" || !fallback {
		return stored, false
	}
	v := env.Getenv(envFallbacks[key])
	return v, v != ""
}

func isValidConfigKey(key string) bool {
	return slices.Contains(config.Keys(), key)
}
