package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tool Tool
		out  string
		want string
	}{
		{"zenity", Zenity, "3.44.0\n", "v3.44.0"},
		{"zenity gtk4", Zenity, "4.0.1\n", "v4.0.1"},
		{"kdialog last field", KDialog, "kdialog 23.08.1\n", "v23.8.1"},
		{"yad first field", Yad, "13.0 (GTK+ 3.24.38)\n", "v13.0.0"},
		{"prefixed", Zenity, "v3.90.0", "v3.90.0"},
		{"garbage", Zenity, "zenity: command not understood", ""},
		{"empty", Zenity, "", ""},
		{"non utf8", Zenity, "\xff\xfe", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseVersion(tt.tool, []byte(tt.out)))
		})
	}
}

func TestCapabilityBefore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		cutoff  [3]int
		want    bool
	}{
		{"3.89.0", [3]int{3, 91, 0}, true},
		{"3.90.0", [3]int{3, 91, 0}, true},
		{"3.91.0", [3]int{3, 91, 0}, false},
		{"4.0.0", [3]int{3, 91, 0}, false},
		{"3.89.0", [3]int{3, 90, 0}, true},
		{"3.90.0", [3]int{3, 90, 0}, false},
		{"", [3]int{3, 91, 0}, false},
		{"not-a-version", [3]int{99, 0, 0}, false},
	}

	for _, tt := range tests {
		c := FixedCapability(Zenity, "/usr/bin/zenity", tt.version)
		assert.Equal(t, tt.want, c.Before(tt.cutoff[0], tt.cutoff[1], tt.cutoff[2]), "%s < %v", tt.version, tt.cutoff)
	}
}

func TestCapabilityProbe_FailedRunIsUnknown(t *testing.T) {
	t.Parallel()

	f := newFakeEnv("linux")
	f.version = "garbage"
	c := newCapability(Zenity, "/usr/bin/zenity", f.env(), 0, nil)

	assert.Equal(t, "", c.Version())
	assert.False(t, c.Before(100, 0, 0))
	assert.Equal(t, 1, f.versionProbes())
}

func TestCapabilityProbe_SkipsToolsWithoutVersionFlag(t *testing.T) {
	t.Parallel()

	f := newFakeEnv("darwin")
	c := newCapability(Osascript, "/usr/bin/osascript", f.env(), 0, nil)

	assert.Equal(t, "", c.Version())
	assert.Equal(t, 0, f.versionProbes())
}
