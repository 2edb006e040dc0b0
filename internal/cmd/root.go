package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runger/nativedialog"
	"github.com/runger/nativedialog/internal/config"
)

// ErrCancelled is returned when the user dismissed the dialog. The process
// exits 1 without printing anything.
var ErrCancelled = errors.New("cancelled")

const (
	groupDialogs = "dialogs"
	groupSetup   = "setup"
)

var (
	backendFlag string
	colorMode   = "auto"
)

// newDispatcher builds the dispatcher for one command. Tests replace it.
var newDispatcher = func(cfg *config.Config) *nativedialog.Dispatcher {
	return nativedialog.New(nativedialog.WithConfig(cfg))
}

var rootCmd = &cobra.Command{
	Use:   "nativedialog",
	Short: "Native file, message and progress dialogs from the shell",
	Long: `nativedialog - native dialogs from the shell
  - open, save and folder choosers print the chosen paths
  - message and confirm boxes report the answer in the exit status
  - progress reads "N" and "# text" lines from stdin`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyColorMode()
	},
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, ErrCancelled) {
		fmt.Fprintf(os.Stderr, "%sError:%s %v\n", colorRed, colorReset, err)
	}
	return err
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupDialogs, Title: "Dialogs:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "force a backend (zenity, kdialog, yad, osascript, native)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the user's configuration and applies --backend.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if backendFlag != "" {
		if err := cfg.Set("backend.preferred", backendFlag); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func dispatcher() (*nativedialog.Dispatcher, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newDispatcher(cfg), nil
}
