package cmd

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/runger/nativedialog/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config [key] [value]",
	Short:   "Get or set configuration values",
	GroupID: groupSetup,
	Long: `Get or set nativedialog configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/nativedialog/config.yaml (XDG compliant).

Keys are in the format: section.key
Sections: backend, messages, logging, windows

Examples:
  nativedialog config                              # List all keys
  nativedialog config backend.preferred            # Get the preferred backend
  nativedialog config backend.preferred kdialog    # Always use kdialog
  nativedialog config backend.zenity_args "--timeout 60"
  nativedialog config logging.file default         # Log to the data directory`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	switch len(args) {
	case 0:
		return listConfig(out, cfg, paths)
	case 1:
		return getConfig(out, cfg, args[0])
	case 2:
		return setConfig(out, cfg, paths, args[0], args[1])
	}

	return nil
}

func listConfig(out io.Writer, cfg *config.Config, paths *config.Paths) error {
	fmt.Fprintf(out, "%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintln(out)

	var failedKeys []string
	for _, key := range config.ListKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			failedKeys = append(failedKeys, key)
			continue
		}

		displayValue := value
		if displayValue == "" {
			displayValue = colorDim + "(not set)" + colorReset
		}

		fmt.Fprintf(out, "  %s%s%s = %s\n", colorCyan, key, colorReset, displayValue)
	}

	if len(failedKeys) > 0 {
		fmt.Fprintf(out, "\n%sWarning:%s Failed to retrieve keys: %s\n", colorYellow, colorReset, strings.Join(failedKeys, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Config file: %s\n", paths.ConfigFile())

	return nil
}

func getConfig(out io.Writer, cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return withSuggestion(err, key)
	}

	if value == "" {
		fmt.Fprintf(out, "%s(not set)%s\n", colorDim, colorReset)
	} else {
		fmt.Fprintln(out, value)
	}

	return nil
}

func setConfig(out io.Writer, cfg *config.Config, paths *config.Paths, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return withSuggestion(err, key)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := cfg.SaveToFile(paths.ConfigFile()); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s%s%s = %s\n", colorCyan, key, colorReset, value)
	fmt.Fprintf(out, "Saved to: %s\n", paths.ConfigFile())

	return nil
}

// withSuggestion appends close matches to an unknown-key error.
func withSuggestion(err error, key string) error {
	keys := config.ListKeys()
	if slices.Contains(keys, key) {
		return err
	}
	if s := suggestKeys(key, keys); len(s) > 0 {
		return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(s, " or "))
	}
	return err
}

// suggestKeys returns up to three keys matching key, closest first. The
// section is dropped from the query so "prefered" finds backend.preferred.
func suggestKeys(key string, keys []string) []string {
	query := key
	if _, field, ok := strings.Cut(key, "."); ok && field != "" {
		query = field
	}

	ranks := fuzzy.RankFindNormalizedFold(query, keys)
	if len(ranks) == 0 {
		ranks = fuzzy.RankFindNormalizedFold(key, keys)
	}
	sort.Sort(ranks)

	var out []string
	for i := 0; i < len(ranks) && i < 3; i++ {
		out = append(out, ranks[i].Target)
	}
	return out
}
