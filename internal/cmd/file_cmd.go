package cmd

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/runger/nativedialog"
)

// copyToClipboard is swapped in tests.
var copyToClipboard = clipboard.WriteAll

type fileOptions struct {
	title    string
	location string
	filename string
	filters  []string
	attach   string
	modal    bool
	copy     bool
	multiple bool
}

var (
	openOpts fileOptions
	saveOpts fileOptions
	dirOpts  fileOptions
)

var openCmd = &cobra.Command{
	Use:     "open",
	Short:   "Choose existing files",
	GroupID: groupDialogs,
	Long: `Show a file chooser and print the chosen path.

With --multiple, every chosen path is printed on its own line.
Exits 1 without output when the user cancels.

Examples:
  nativedialog open
  nativedialog open --multiple --filter "Images:png,jpg,jpeg"
  nativedialog open --location ~/Downloads --copy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFileDialog(cmd, openOpts, func(f nativedialog.FileDialog) ([]string, error) {
			if openOpts.multiple {
				return f.OpenMultipleFile().Show()
			}
			return single(f.OpenSingleFile().Show())
		})
	},
}

var saveCmd = &cobra.Command{
	Use:     "save",
	Short:   "Choose where to save a file",
	GroupID: groupDialogs,
	Long: `Show a save dialog and print the chosen path.

When filters are given, a name none of them accepts is rejected with a
warning and the dialog is shown again, pre-filled with the rejected name.

Examples:
  nativedialog save --filename report.pdf --filter "PDF:pdf"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFileDialog(cmd, saveOpts, func(f nativedialog.FileDialog) ([]string, error) {
			return single(f.SaveSingleFile().Show())
		})
	},
}

var dirCmd = &cobra.Command{
	Use:     "dir",
	Short:   "Choose a folder",
	GroupID: groupDialogs,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFileDialog(cmd, dirOpts, func(f nativedialog.FileDialog) ([]string, error) {
			return single(f.OpenSingleDir().Show())
		})
	},
}

func init() {
	addFileFlags(openCmd, &openOpts, true)
	openCmd.Flags().BoolVarP(&openOpts.multiple, "multiple", "m", false, "allow choosing several files")
	addFileFlags(saveCmd, &saveOpts, true)
	addFileFlags(dirCmd, &dirOpts, false)

	rootCmd.AddCommand(openCmd, saveCmd, dirCmd)
}

func addFileFlags(cmd *cobra.Command, opts *fileOptions, withFilters bool) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.title, "title", "t", "", "dialog title")
	flags.StringVarP(&opts.location, "location", "l", "", "starting directory (~ is expanded)")
	flags.StringVar(&opts.filename, "filename", "", "pre-filled file name")
	flags.StringVar(&opts.attach, "attach", "", "owner window id (decimal or 0x hex)")
	flags.BoolVar(&opts.modal, "modal", false, "block the owner window")
	flags.BoolVar(&opts.copy, "copy", false, "also copy the chosen path to the clipboard")
	if withFilters {
		flags.StringArrayVarP(&opts.filters, "filter", "f", nil, `file filter as "Description:ext,ext" (repeatable)`)
	}
}

func single(path string, err error) ([]string, error) {
	if err != nil || path == "" {
		return nil, err
	}
	return []string{path}, nil
}

func runFileDialog(cmd *cobra.Command, opts fileOptions, show func(nativedialog.FileDialog) ([]string, error)) error {
	f, err := buildFileDialog(opts)
	if err != nil {
		return err
	}

	paths, err := show(f)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return ErrCancelled
	}

	out := cmd.OutOrStdout()
	for _, p := range paths {
		fmt.Fprintln(out, p)
	}

	if opts.copy {
		if err := copyToClipboard(strings.Join(paths, "\n")); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%sWarning:%s failed to copy to clipboard: %v\n", colorYellow, colorReset, err)
		}
	}
	return nil
}

func buildFileDialog(opts fileOptions) (nativedialog.FileDialog, error) {
	d, err := dispatcher()
	if err != nil {
		return nativedialog.FileDialog{}, err
	}

	f := d.File().SetTitle(opts.title).SetLocation(opts.location).SetFilename(opts.filename).SetModal(opts.modal)
	for _, spec := range opts.filters {
		desc, exts, err := parseFilter(spec)
		if err != nil {
			return nativedialog.FileDialog{}, err
		}
		f = f.AddFilter(desc, exts...)
	}

	if opts.attach != "" {
		owner, err := parseOwner(opts.attach, runtime.GOOS)
		if err != nil {
			return nativedialog.FileDialog{}, err
		}
		f = f.SetOwner(owner)
	}
	return f, nil
}

// parseFilter splits "Images:png,jpg" into a description and extensions.
// Without a colon the extension list doubles as the description.
func parseFilter(spec string) (string, []string, error) {
	desc, list, found := strings.Cut(spec, ":")
	if !found {
		list = spec
		desc = ""
	}

	var exts []string
	for _, e := range strings.Split(list, ",") {
		if e = strings.TrimSpace(e); e != "" {
			exts = append(exts, e)
		}
	}
	if len(exts) == 0 {
		return "", nil, fmt.Errorf("invalid filter %q: no extensions", spec)
	}

	desc = strings.TrimSpace(desc)
	if desc == "" {
		desc = strings.Join(exts, ", ")
	}
	return desc, exts, nil
}

// parseOwner turns an --attach value into a window reference for goos.
func parseOwner(s, goos string) (nativedialog.WindowRef, error) {
	id, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return nativedialog.WindowRef{}, fmt.Errorf("invalid window id %q: %w", s, err)
	}

	switch goos {
	case "windows":
		return nativedialog.Win32Window(uintptr(id))
	case "darwin":
		return nativedialog.AppKitWindow(uintptr(id))
	default:
		return nativedialog.X11Window(id)
	}
}
