package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/nativedialog/internal/dialog"
	"github.com/runger/nativedialog/internal/filter"
)

func mustFilter(t *testing.T, desc string, exts ...string) filter.Filter {
	t.Helper()
	f, ok := filter.New(desc, exts...)
	require.True(t, ok)
	return f
}

func mustX11(t *testing.T, id uint64) dialog.WindowRef {
	t.Helper()
	w, err := dialog.X11Window(id)
	require.NoError(t, err)
	return w
}

func zenityFor(version string) *zenity {
	return &zenity{proc: proc{cap: FixedCapability(Zenity, "/usr/bin/zenity", version)}, width: DefaultMessageWidth}
}

func TestZenityFileArgs_Save(t *testing.T) {
	t.Parallel()

	png := mustFilter(t, "Images", "png", "jpg")
	inv := Invocation{
		Request: dialog.Request{Kind: dialog.SaveFile, Title: "Save As", Filters: filter.Set{png}},
		Target:  "/tmp/Untitled",
	}

	old := zenityFor("3.44.0").fileArgs(inv)
	assert.Equal(t, []string{
		"--file-selection", "--title", "Save As",
		"--save", "--confirm-overwrite",
		"--filename", "/tmp/Untitled",
		"--file-filter", "Images (*.png *.jpg) | *.png *.jpg",
	}, old)

	assert.Contains(t, zenityFor("3.90.0").fileArgs(inv), "--confirm-overwrite")
	assert.NotContains(t, zenityFor("3.91.0").fileArgs(inv), "--confirm-overwrite")
	assert.NotContains(t, zenityFor("4.0.1").fileArgs(inv), "--confirm-overwrite")
	assert.NotContains(t, zenityFor("").fileArgs(inv), "--confirm-overwrite", "unknown version omits gated flags")
}

func TestZenityFileArgs_Kinds(t *testing.T) {
	t.Parallel()

	z := zenityFor("3.44.0")

	multi := z.fileArgs(Invocation{Request: dialog.Request{Kind: dialog.OpenMultipleFile, Title: "Open File"}})
	assert.Equal(t, []string{"--file-selection", "--title", "Open File", "--multiple", "--separator", "\n"}, multi)

	dir := z.fileArgs(Invocation{Request: dialog.Request{Kind: dialog.OpenDirectory, Title: "Open Folder"}, Target: "/home/a/"})
	assert.Equal(t, []string{"--file-selection", "--title", "Open Folder", "--directory", "--filename", "/home/a/"}, dir)
}

func TestZenityAttach(t *testing.T) {
	t.Parallel()

	z := zenityFor("3.44.0")
	req := dialog.Request{Kind: dialog.OpenSingleFile, Title: "Open File", Owner: mustX11(t, 0x3a00007)}

	args := z.fileArgs(Invocation{Request: req})
	assert.Equal(t, []string{"--attach", "60817415", "--file-selection"}, args[:3])

	req.Modal = true
	args = z.fileArgs(Invocation{Request: req})
	assert.Equal(t, []string{"--attach", "60817415", "--modal", "--file-selection"}, args[:4])

	win, err := dialog.Win32Window(7)
	require.NoError(t, err)
	req.Owner = win
	args = z.fileArgs(Invocation{Request: req})
	assert.Equal(t, "--file-selection", args[0], "non-X11 owners are ignored")
}

func TestZenityMessageArgs(t *testing.T) {
	t.Parallel()

	alert := Invocation{Request: dialog.Request{Kind: dialog.Alert, Title: "Note", Text: `a < b & "c"`, Level: dialog.LevelWarning}}
	assert.Equal(t, []string{
		"--width=400", "--warning",
		"--title", "Note",
		"--text", "a &lt; b &amp; &quot;c&quot;",
	}, zenityFor("3.44.0").messageArgs(alert))

	confirm := Invocation{Request: dialog.Request{Kind: dialog.Confirm, Title: "Sure?", Text: "Delete?", Level: dialog.LevelError}}
	assert.Equal(t, []string{
		"--width=400", "--question", "--icon-name", "dialog-error",
		"--title", "Sure?", "--text", "Delete?",
	}, zenityFor("3.89.0").messageArgs(confirm))

	newer := zenityFor("3.90.0").messageArgs(confirm)
	assert.Contains(t, newer, "--icon")
	assert.NotContains(t, newer, "--icon-name")

	unknown := zenityFor("").messageArgs(confirm)
	assert.Contains(t, unknown, "--icon")
	assert.NotContains(t, unknown, "--icon-name")
}

func TestZenityProgressArgs(t *testing.T) {
	t.Parallel()

	inv := Invocation{Request: dialog.Request{Kind: dialog.Progress, Title: "Copying", Text: "1 < 2"}}
	assert.Equal(t, []string{"--progress", "--title", "Copying", "--text", "1 &lt; 2"}, zenityFor("").progressArgs(inv))
}

func TestKDialogFileArgs(t *testing.T) {
	t.Parallel()

	k := &kdialog{proc: proc{cap: FixedCapability(KDialog, "/usr/bin/kdialog", "")}}
	text := mustFilter(t, "Text", "txt")
	md := mustFilter(t, "Markdown", "md", "markdown")

	multi := k.fileArgs(Invocation{
		Request: dialog.Request{Kind: dialog.OpenMultipleFile, Title: "Open File", Filters: filter.Set{text, md}, Owner: mustX11(t, 255)},
	})
	assert.Equal(t, []string{
		"--attach", "255",
		"--getopenfilename", "--title", "Open File", "",
		"--multiple", "--separate-output",
		"Text (*.txt)\nMarkdown (*.md *.markdown)",
	}, multi)

	save := k.fileArgs(Invocation{Request: dialog.Request{Kind: dialog.SaveFile, Title: "Save As"}, Target: "/tmp/a.txt"})
	assert.Equal(t, []string{"--getsavefilename", "--title", "Save As", "/tmp/a.txt"}, save)

	dir := k.fileArgs(Invocation{Request: dialog.Request{Kind: dialog.OpenDirectory, Title: "Open Folder"}})
	assert.Equal(t, []string{"--getexistingdirectory", "--title", "Open Folder", ""}, dir)
}

func TestKDialogMessageArgs(t *testing.T) {
	t.Parallel()

	k := &kdialog{proc: proc{cap: FixedCapability(KDialog, "/usr/bin/kdialog", "")}}

	args := k.messageArgs(Invocation{Request: dialog.Request{
		Kind: dialog.Confirm, Title: "Sure?", Text: "line1\nline2\t<x>", Owner: mustX11(t, 255),
	}})
	assert.Equal(t, []string{
		"--attach=0xff", "--yesno",
		"<html><body>line1<br>line2 &lt;x&gt;</body></html>",
		"--title", "Sure?", "--icon=dialog-information",
	}, args)

	alert := k.messageArgs(Invocation{Request: dialog.Request{Kind: dialog.Alert, Title: "Oops", Text: "a&b", Level: dialog.LevelError}})
	assert.Equal(t, []string{"--msgbox", "<html><body>a&amp;b</body></html>", "--title", "Oops", "--icon=dialog-error"}, alert)
}

func TestYadArgs(t *testing.T) {
	t.Parallel()

	y := &yad{proc: proc{cap: FixedCapability(Yad, "/usr/bin/yad", "")}, width: 320}
	img := mustFilter(t, "Images", "png")

	save := y.fileArgs(Invocation{
		Request: dialog.Request{Kind: dialog.SaveFile, Title: "Save As", Filters: filter.Set{img}, Owner: mustX11(t, 9)},
		Target:  "/tmp/x.png",
	})
	assert.Equal(t, []string{
		"--file", "--title", "Save As", "--save", "--confirm-overwrite",
		"--filename", "/tmp/x.png", "--file-filter", "Images (*.png) | *.png",
	}, save)

	confirm := y.messageArgs(Invocation{Request: dialog.Request{Kind: dialog.Confirm, Title: "Q", Text: "'ok'"}})
	assert.Equal(t, []string{
		"--width=320", "--title", "Q", "--image", "dialog-information",
		"--text", "&apos;ok&apos;", "--button=No:1", "--button=Yes:0",
	}, confirm)

	alert := y.messageArgs(Invocation{Request: dialog.Request{Kind: dialog.Alert, Title: "A", Text: "t"}})
	assert.Equal(t, "--button=OK:0", alert[len(alert)-1])
}

func TestOsascriptScript(t *testing.T) {
	t.Parallel()

	o := &osascript{proc: proc{cap: FixedCapability(Osascript, "/usr/bin/osascript", "")}}
	text := mustFilter(t, "Text", "txt", "md")

	open := o.script(Invocation{
		Request: dialog.Request{Kind: dialog.OpenSingleFile, Title: `Say "hi"`, Filters: filter.Set{text}},
		Target:  "/Users/a/Documents/",
	})
	assert.Equal(t, `POSIX path of (choose file with prompt "Say \"hi\"" of type {"txt", "md"} default location POSIX file "/Users/a/Documents")`, open)

	dotOnly := o.script(Invocation{Request: dialog.Request{Kind: dialog.OpenSingleFile, Title: "Pick", Filters: filter.Set{mustFilter(t, "Any", ".")}}})
	assert.Equal(t, `POSIX path of (choose file with prompt "Pick")`, dotOnly)

	save := o.script(Invocation{Request: dialog.Request{Kind: dialog.SaveFile, Title: "Save As"}, Target: "/tmp/a.png"})
	assert.Equal(t, `POSIX path of (choose file name with prompt "Save As" default name "a.png" default location POSIX file "/tmp")`, save)

	dir := o.script(Invocation{Request: dialog.Request{Kind: dialog.OpenDirectory, Title: "Open Folder"}})
	assert.Equal(t, `POSIX path of (choose folder with prompt "Open Folder")`, dir)

	multi := o.script(Invocation{Request: dialog.Request{Kind: dialog.OpenMultipleFile, Title: "Open File"}})
	assert.Contains(t, multi, "with multiple selections allowed")
	assert.Contains(t, multi, "POSIX path of f & linefeed")

	confirm := o.script(Invocation{Request: dialog.Request{Kind: dialog.Confirm, Title: "Q", Text: "Sure?", Level: dialog.LevelWarning}})
	assert.Equal(t, `display dialog "Sure?" with title "Q" buttons {"No", "Yes"} default button "Yes" cancel button "No" with icon caution`, confirm)
}

func TestSplitTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		dir      string
		fileName string
	}{
		{"", "", ""},
		{"/tmp/", "/tmp", ""},
		{"/tmp/a.txt", "/tmp", "a.txt"},
		{"a.txt", "", "a.txt"},
	}
	for _, tt := range tests {
		dir, name := splitTarget(tt.in)
		assert.Equal(t, tt.dir, dir, tt.in)
		assert.Equal(t, tt.fileName, name, tt.in)
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&amp;&lt;&gt;&quot;&apos;", escapePango(`&<>"'`))
	assert.Equal(t, "<html><body>&amp;lt;</body></html>", escapeQt("&lt;"))
	assert.Equal(t, `"a\\b\"c"`, appleString(`a\b"c`))
}
