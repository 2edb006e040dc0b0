package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/nativedialog"
	"github.com/runger/nativedialog/internal/dialog"
)

type messageOptions struct {
	title  string
	level  string
	attach string
}

var (
	messageOpts messageOptions
	confirmOpts messageOptions
)

var messageCmd = &cobra.Command{
	Use:     "message <text>...",
	Short:   "Show a message box",
	GroupID: groupDialogs,
	Long: `Show a message box with an OK button and wait until it is dismissed.

Examples:
  nativedialog message "Backup finished"
  nativedialog message --level error --title Backup "Disk full"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildMessage(messageOpts, args)
		if err != nil {
			return err
		}
		return m.Alert().Show()
	},
}

var confirmCmd = &cobra.Command{
	Use:     "confirm <question>...",
	Short:   "Ask a yes/no question",
	GroupID: groupDialogs,
	Long: `Ask a yes/no question. Exits 0 for yes and 1 for no or when the
dialog is closed.

Examples:
  nativedialog confirm "Overwrite existing files?" && cp -r src dst`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildMessage(confirmOpts, args)
		if err != nil {
			return err
		}
		yes, err := m.Confirm().Show()
		if err != nil {
			return err
		}
		if !yes {
			return ErrCancelled
		}
		return nil
	},
}

func init() {
	for _, c := range []struct {
		cmd  *cobra.Command
		opts *messageOptions
	}{{messageCmd, &messageOpts}, {confirmCmd, &confirmOpts}} {
		flags := c.cmd.Flags()
		flags.StringVarP(&c.opts.title, "title", "t", "", "dialog title")
		flags.StringVar(&c.opts.level, "level", "info", "icon: info, warning, error")
		flags.StringVar(&c.opts.attach, "attach", "", "owner window id (decimal or 0x hex)")
	}

	rootCmd.AddCommand(messageCmd, confirmCmd)
}

func buildMessage(opts messageOptions, args []string) (nativedialog.MessageDialog, error) {
	level, ok := dialog.ParseLevel(opts.level)
	if !ok {
		return nativedialog.MessageDialog{}, fmt.Errorf("invalid level %q (must be info, warning, or error)", opts.level)
	}

	d, err := dispatcher()
	if err != nil {
		return nativedialog.MessageDialog{}, err
	}

	m := d.Message().SetTitle(opts.title).SetText(strings.Join(args, " ")).SetLevel(level)
	if opts.attach != "" {
		owner, err := parseOwner(opts.attach, runtime.GOOS)
		if err != nil {
			return nativedialog.MessageDialog{}, err
		}
		m = m.SetOwner(owner)
	}
	return m, nil
}
