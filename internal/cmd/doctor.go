package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/nativedialog/internal/backend"
	"github.com/runger/nativedialog/internal/config"
)

// doctorEnv is swapped in tests.
var doctorEnv = backend.SystemEnv

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Short:   "Show which dialog backends are available",
	GroupID: groupSetup,
	Long: `List every dialog backend with its path and version, and the backend
a dialog would use right now.

Examples:
  nativedialog doctor
  DISPLAY= nativedialog doctor   # what happens without a display`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runDoctor(cmd.OutOrStdout(), doctorEnv(), cfg, termWidth())
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type doctorRow struct {
	tool      string
	status    string
	path      string
	version   string
	candidate bool
}

func runDoctor(out io.Writer, env backend.Env, cfg *config.Config, width int) error {
	sel := backend.NewSelector(env, backend.SelectorOptions{
		Preferred:      cfg.Backend.Preferred,
		VersionTimeout: cfg.VersionTimeout(),
	})

	var rows []doctorRow
	for _, st := range sel.Probe() {
		row := doctorRow{tool: st.Tool.String(), status: "missing", path: st.Path, candidate: st.Candidate}
		if st.Available {
			row.status = "ok"
			if c, ok := sel.Capability(st.Tool); ok {
				row.version = strings.TrimPrefix(c.Version(), "v")
			}
		}
		if row.path == "" && st.Tool == backend.Native && st.Available {
			row.path = "(built in)"
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(out, headerStyle.Render("nativedialog doctor"))
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintf(out, "  os: %s   display: %t   desktop: %s\n", env.GOOS, env.HasDisplay(), orDash(strings.Join(env.Desktops(), ":")))
	fmt.Fprintf(out, "  preferred: %s\n\n", orDash(cfg.Backend.Preferred))

	renderDoctorTable(out, rows, width)

	fmt.Fprintln(out)
	c, err := sel.Select()
	if err != nil {
		fmt.Fprintf(out, "%s %v\n", missStyle.Render("no backend:"), err)
		if errors.Is(err, backend.ErrPreferredUnavailable) {
			fmt.Fprintln(out, dimStyle.Render("  set backend.preferred to auto to fall back to detection"))
		}
		return fmt.Errorf("no usable dialog backend")
	}
	fmt.Fprintf(out, "selected: %s\n", pickStyle.Render(c.Tool.String()))
	return nil
}

func renderDoctorTable(out io.Writer, rows []doctorRow, width int) {
	const (
		toolW    = 10
		statusW  = 8
		versionW = 12
	)
	// four cells joined by two spaces, plus the two-space indent
	pathW := width - toolW - statusW - versionW - 2 - 3*2
	if pathW < 12 {
		pathW = 12
	}

	fmt.Fprintln(out, "  "+headerStyle.Render(
		padCell("BACKEND", toolW)+"  "+padCell("STATUS", statusW)+"  "+padCell("VERSION", versionW)+"  "+padCell("PATH", pathW)))

	for _, r := range rows {
		status := padCell(r.status, statusW)
		if r.status == "ok" {
			status = okStyle.Render(status)
		} else {
			status = missStyle.Render(status)
		}

		tool := padCell(r.tool, toolW)
		if !r.candidate {
			tool = dimStyle.Render(tool)
		}

		fmt.Fprintf(out, "  %s  %s  %s  %s\n", tool, status, padCell(orDash(r.version), versionW), strings.TrimRight(padCell(orDash(r.path), pathW), " "))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
