package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/nativedialog"
)

var progressOpts struct {
	title string
	text  string
}

var progressCmd = &cobra.Command{
	Use:     "progress",
	Short:   "Show a progress dialog driven by stdin",
	GroupID: groupDialogs,
	Long: `Show a progress dialog and update it from stdin.

Each input line is either a percentage ("42" or "42.5") or a label
prefixed with "#" ("# Copying photos"). Other lines are ignored.
The dialog closes at end of input. Exits 1 if the user cancels.

Examples:
  for i in $(seq 0 10 100); do echo $i; sleep 1; done | nativedialog progress --title Backup`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := dispatcher()
		if err != nil {
			return err
		}
		h, err := d.Progress().SetTitle(progressOpts.title).SetText(progressOpts.text).Show()
		if err != nil {
			return err
		}
		return driveProgress(h, cmd.InOrStdin())
	},
}

func init() {
	progressCmd.Flags().StringVarP(&progressOpts.title, "title", "t", "", "dialog title")
	progressCmd.Flags().StringVar(&progressOpts.text, "text", "", "initial label")

	rootCmd.AddCommand(progressCmd)
}

// driveProgress applies the stdin protocol to h and closes it at end of
// input or when the user cancels.
func driveProgress(h nativedialog.ProgressHandle, in io.Reader) (err error) {
	defer func() {
		if cerr := h.Close(); err == nil {
			err = cerr
		}
	}()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		// poll before writing: a cancelled tool has closed its stdin
		cancelled, err := h.CheckCancelled()
		if err != nil {
			return err
		}
		if cancelled {
			return ErrCancelled
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "#"):
			if err := h.SetText(strings.TrimSpace(line[1:])); err != nil {
				return err
			}
		case line != "":
			percent, perr := strconv.ParseFloat(line, 64)
			if perr != nil {
				continue
			}
			if err := h.SetProgress(percent); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
