package backend

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/mod/semver"

	dlog "github.com/runger/nativedialog/internal/log"
)

// DefaultVersionTimeout bounds a single `--version` query.
const DefaultVersionTimeout = 5 * time.Second

// Capability is a selected tool plus its lazily detected version. It is
// resolved once per dispatch and never shared between dispatches.
type Capability struct {
	Tool Tool
	Path string

	env     Env
	timeout time.Duration
	logger  *slog.Logger

	once    sync.Once
	version string
}

func newCapability(tool Tool, path string, env Env, timeout time.Duration, logger *slog.Logger) *Capability {
	if timeout <= 0 {
		timeout = DefaultVersionTimeout
	}
	if logger == nil {
		logger = dlog.Discard()
	}
	return &Capability{Tool: tool, Path: path, env: env, timeout: timeout, logger: logger}
}

// FixedCapability returns a capability whose version is already known.
// version uses the tool's own format ("3.44.0"); "" means unknown.
func FixedCapability(tool Tool, path, version string) *Capability {
	c := &Capability{Tool: tool, Path: path, logger: dlog.Discard()}
	c.once.Do(func() {
		c.version = canonical(version)
	})
	return c
}

// Version returns the canonical semver ("v3.44.0") or "" when the tool
// could not be queried or its output did not parse. The tool is queried
// at most once.
func (c *Capability) Version() string {
	c.once.Do(c.probe)
	return c.version
}

// Before reports whether the detected version is known and strictly older
// than major.minor.patch. An unknown version is never "before" anything,
// so flags gated on an old release are omitted rather than guessed.
func (c *Capability) Before(major, minor, patch int) bool {
	v := c.Version()
	if v == "" {
		return false
	}
	return semver.Compare(v, fmt.Sprintf("v%d.%d.%d", major, minor, patch)) < 0
}

func (c *Capability) probe() {
	switch c.Tool {
	case Zenity, KDialog, Yad:
	default:
		return
	}
	if c.env.Run == nil || c.Path == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	start := time.Now()
	res, err := c.env.Run(ctx, c.Path, "--version")
	if err == nil && res.ExitCode == 0 {
		c.version = ParseVersion(c.Tool, res.Stdout)
	}
	dlog.LogVersionProbe(c.logger, c.Tool.String(), c.version, time.Since(start))
}

// ParseVersion extracts the version from `<tool> --version` output.
// kdialog prints "kdialog 23.08.1"; zenity and yad print the version first.
func ParseVersion(tool Tool, out []byte) string {
	if !utf8.Valid(out) {
		return ""
	}
	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return ""
	}
	field := fields[0]
	if tool == KDialog {
		field = fields[len(fields)-1]
	}
	return canonical(field)
}

// canonical turns "3.44.0", "v13.0" or "23.08.1" into "vX.Y.Z". Leading
// zeros are dropped since semver rejects them and KDE releases use them.
func canonical(v string) string {
	v = strings.TrimPrefix(v, "v")
	end := strings.IndexFunc(v, func(r rune) bool { return r != '.' && (r < '0' || r > '9') })
	if end >= 0 {
		v = v[:end]
	}
	parts := strings.Split(strings.TrimSuffix(v, "."), ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	nums := make([]string, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return ""
		}
		nums = append(nums, strconv.Itoa(n))
	}

	out := "v" + strings.Join(nums, ".")
	if !semver.IsValid(out) {
		return ""
	}
	return semver.Canonical(out)
}
