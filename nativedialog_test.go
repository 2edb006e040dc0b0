package nativedialog_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/nativedialog"
	"github.com/runger/nativedialog/internal/config"
)

type fakeBackend struct {
	mu      sync.Mutex
	results []nativedialog.Result
	calls   []nativedialog.Invocation
	handle  *fakeProgress
	err     error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Show(inv nativedialog.Invocation) (nativedialog.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, inv)
	if f.err != nil {
		return nativedialog.Result{}, f.err
	}
	if inv.Request.Kind == nativedialog.KindAlert || len(f.results) == 0 {
		return nativedialog.Result{}, nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r, nil
}

func (f *fakeBackend) Progress(inv nativedialog.Invocation) (nativedialog.BackendProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, inv)
	if f.err != nil {
		return nil, f.err
	}
	f.handle = &fakeProgress{}
	return f.handle, nil
}

func (f *fakeBackend) kinds() []nativedialog.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]nativedialog.Kind, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Request.Kind)
	}
	return out
}

func (f *fakeBackend) last() nativedialog.Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type fakeProgress struct {
	values []float64
	closed int
}

func (p *fakeProgress) SetProgress(v float64) error   { p.values = append(p.values, v); return nil }
func (p *fakeProgress) SetText(string) error          { return nil }
func (p *fakeProgress) CheckCancelled() (bool, error) { return false, nil }
func (p *fakeProgress) Close() error                  { p.closed++; return nil }

func paths(ps ...string) nativedialog.Result { return nativedialog.Result{Paths: ps} }

func TestDefaultTitles(t *testing.T) {
	t.Parallel()

	d := nativedialog.New(nativedialog.WithBackend(&fakeBackend{}))
	f := d.File()
	m := d.Message()

	assert.Equal(t, "Open File", f.OpenSingleFile().Request().Title)
	assert.Equal(t, "Open File", f.OpenMultipleFile().Request().Title)
	assert.Equal(t, "Open Folder", f.OpenSingleDir().Request().Title)
	assert.Equal(t, "Save As", f.SaveSingleFile().Request().Title)
	assert.Equal(t, "Message", m.Alert().Request().Title)
	assert.Equal(t, "Confirm", m.Confirm().Request().Title)

	assert.Equal(t, "Pick one", f.SetTitle("Pick one").OpenSingleFile().Request().Title)
	assert.Equal(t, "Save As", f.SetTitle("Pick one").ResetTitle().SaveSingleFile().Request().Title)
}

func TestFileDialog_BuilderValuesDoNotAlias(t *testing.T) {
	t.Parallel()

	base := nativedialog.New(nativedialog.WithBackend(&fakeBackend{})).File().AddFilter("PNG", "png")
	a := base.AddFilter("JPEG", "jpg", "jpeg").SaveSingleFile().Request()
	b := base.AddFilter("GIF", ".gif").SaveSingleFile().Request()

	require.Len(t, a.Filters, 2)
	require.Len(t, b.Filters, 2)
	assert.Equal(t, []string{".jpg", ".jpeg"}, a.Filters[1].Extensions)
	assert.Equal(t, []string{".gif"}, b.Filters[1].Extensions)
	assert.Len(t, base.SaveSingleFile().Request().Filters, 1)
}

func TestFileDialog_AddFilterWithoutExtensionsIsNoop(t *testing.T) {
	t.Parallel()

	f := nativedialog.New(nativedialog.WithBackend(&fakeBackend{})).File()
	assert.Empty(t, f.AddFilter("Nothing").OpenSingleFile().Request().Filters)
	assert.Empty(t, f.AddFilter("Blank", "").OpenSingleFile().Request().Filters)
	assert.Empty(t, f.AddFilter("Text", "txt").ResetFilters().OpenSingleFile().Request().Filters)
}

func TestFileDialog_DirectoryDropsFilters(t *testing.T) {
	t.Parallel()

	f := nativedialog.New(nativedialog.WithBackend(&fakeBackend{})).File().AddFilter("Text", "txt")
	assert.Empty(t, f.OpenSingleDir().Request().Filters)
	assert.Len(t, f.OpenSingleFile().Request().Filters, 1)
}

func TestSingleFileRequest_Show(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{results: []nativedialog.Result{paths("/home/u/notes.txt")}}
	d := nativedialog.New(nativedialog.WithBackend(fb))

	got, err := d.File().SetLocation("/home/u").OpenSingleFile().Show()
	require.NoError(t, err)
	assert.Equal(t, "/home/u/notes.txt", got)
	assert.Equal(t, filepath.Clean("/home/u")+string(filepath.Separator), fb.last().Target)
}

func TestSingleFileRequest_CancelIsNotAnError(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{results: []nativedialog.Result{{Cancelled: true}}}
	got, err := nativedialog.New(nativedialog.WithBackend(fb)).File().OpenSingleFile().Show()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRequestsAreSingleUse(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{results: []nativedialog.Result{paths("/a"), paths("/b")}}
	d := nativedialog.New(nativedialog.WithBackend(fb))

	req := d.File().OpenSingleFile()
	_, err := req.Show()
	require.NoError(t, err)

	_, err = req.Show()
	assert.ErrorIs(t, err, nativedialog.ErrAlreadyShown)

	out := <-req.Spawn()
	assert.ErrorIs(t, out.Err, nativedialog.ErrAlreadyShown)
	assert.Len(t, fb.kinds(), 1)

	confirm := d.Message().Confirm()
	<-confirm.Spawn()
	_, err = confirm.Show()
	assert.ErrorIs(t, err, nativedialog.ErrAlreadyShown)

	alert := d.Message().Alert()
	require.NoError(t, alert.Show())
	assert.ErrorIs(t, alert.Show(), nativedialog.ErrAlreadyShown)

	multi := d.File().OpenMultipleFile()
	<-multi.Spawn()
	assert.ErrorIs(t, (<-multi.Spawn()).Err, nativedialog.ErrAlreadyShown)
}

func TestSaveSingleFile_RetriesRejectedExtension(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{results: []nativedialog.Result{paths("a.xyz"), paths("a.png")}}
	d := nativedialog.New(nativedialog.WithBackend(fb))

	got, err := d.File().AddFilter("PNG image", "png").SaveSingleFile().Show()
	require.NoError(t, err)
	assert.Equal(t, "a.png", got)
	assert.Equal(t, []nativedialog.Kind{
		nativedialog.KindSaveFile,
		nativedialog.KindAlert,
		nativedialog.KindSaveFile,
	}, fb.kinds())
}

func TestDefaultLogFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("the open log file blocks TempDir cleanup on Windows")
	}
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("LOCALAPPDATA", data)

	cfg := config.DefaultConfig()
	cfg.Logging.File = config.DefaultLogFile
	cfg.Logging.Level = "info"

	fb := &fakeBackend{results: []nativedialog.Result{paths("a.xyz"), paths("a.png")}}
	d := nativedialog.New(nativedialog.WithConfig(cfg), nativedialog.WithBackend(fb))

	_, err := d.File().AddFilter("PNG image", "png").SaveSingleFile().Show()
	require.NoError(t, err)

	logged, err := os.ReadFile(filepath.Join(data, "nativedialog", "logs", "nativedialog.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logged), `"msg":"save path rejected"`)
	assert.Contains(t, string(logged), "a.xyz")
}

func TestSaveSingleFile_Spawn(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{results: []nativedialog.Result{{Cancelled: true}}}
	d := nativedialog.New(nativedialog.WithBackend(fb))

	out := <-d.File().AddFilter("PNG image", "png").SaveSingleFile().Spawn()
	require.NoError(t, out.Err)
	assert.Empty(t, out.Value)
	assert.Equal(t, []nativedialog.Kind{nativedialog.KindSaveFile}, fb.kinds())
}

func TestMultipleFileRequest(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{results: []nativedialog.Result{paths("/a", "/b c"), {Cancelled: true}}}
	d := nativedialog.New(nativedialog.WithBackend(fb))

	got, err := d.File().OpenMultipleFile().Show()
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b c"}, got)

	out := <-d.File().OpenMultipleFile().Spawn()
	require.NoError(t, out.Err)
	assert.Empty(t, out.Value)
}

func TestMessageDialog(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{results: []nativedialog.Result{{Confirmed: true}, {Cancelled: true}}}
	d := nativedialog.New(nativedialog.WithBackend(fb))
	q := d.Message().SetTitle("Delete").SetText("Really?").SetLevel(nativedialog.LevelWarning)

	yes, err := q.Confirm().Show()
	require.NoError(t, err)
	assert.True(t, yes)

	req := fb.last().Request
	assert.Equal(t, "Delete", req.Title)
	assert.Equal(t, "Really?", req.Text)
	assert.Equal(t, nativedialog.LevelWarning, req.Level)

	out := <-q.Confirm().Spawn()
	require.NoError(t, out.Err)
	assert.False(t, out.Value)

	alert := <-d.Message().SetText("done").Alert().Spawn()
	assert.NoError(t, alert.Err)
}

func TestOwnerIsForwarded(t *testing.T) {
	t.Parallel()

	owner, err := nativedialog.X11Window(0x2a00003)
	require.NoError(t, err)

	fb := &fakeBackend{results: []nativedialog.Result{paths("/x")}}
	d := nativedialog.New(nativedialog.WithBackend(fb))

	_, err = d.File().SetOwner(owner).SetModal(true).OpenSingleFile().Show()
	require.NoError(t, err)
	assert.Equal(t, owner, fb.last().Request.Owner)
	assert.True(t, fb.last().Request.Modal)

	require.NoError(t, d.Message().SetOwner(owner).ResetOwner().Alert().Show())
	assert.True(t, fb.last().Request.Owner.IsZero())

	_, err = nativedialog.X11Window(0)
	assert.ErrorIs(t, err, nativedialog.ErrInvalidWindow)
}

func TestLocationTildeResolvedAtShow(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME does not drive the home directory on Windows")
	}

	fb := &fakeBackend{results: []nativedialog.Result{paths("/x"), paths("/y")}}
	d := nativedialog.New(nativedialog.WithBackend(fb))
	builder := d.File().SetLocation("~/docs").SetFilename("report.pdf")

	first := t.TempDir()
	t.Setenv("HOME", first)
	_, err := builder.SaveSingleFile().Show()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(first, "docs", "report.pdf"), fb.last().Target)

	second := t.TempDir()
	t.Setenv("HOME", second)
	_, err = builder.SaveSingleFile().Show()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "docs", "report.pdf"), fb.last().Target)
}

func TestProgressDialog(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{}
	d := nativedialog.New(nativedialog.WithBackend(fb))

	h, err := d.Progress().SetTitle("Copying").SetText("file 1 of 3").Show()
	require.NoError(t, err)
	assert.Equal(t, "Copying", fb.last().Request.Title)
	assert.Equal(t, nativedialog.KindProgress, fb.last().Request.Kind)

	assert.ErrorIs(t, h.SetProgress(150), nativedialog.ErrInvalidPercentage)
	require.NoError(t, h.SetProgress(50))
	require.NoError(t, h.SetProgress(50))
	assert.Equal(t, []float64{50}, fb.handle.values)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	assert.Equal(t, 1, fb.handle.closed)
	assert.ErrorIs(t, h.SetProgress(60), nativedialog.ErrProgressClosed)
}

func TestProgressDialog_DefaultTitle(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{}
	h, err := nativedialog.New(nativedialog.WithBackend(fb)).Progress().Show()
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, "Progress", fb.last().Request.Title)
}

func TestBackendErrorsPropagate(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{err: nativedialog.ErrKilled}
	d := nativedialog.New(nativedialog.WithBackend(fb))

	_, err := d.File().OpenSingleFile().Show()
	assert.ErrorIs(t, err, nativedialog.ErrKilled)

	h, err := d.Progress().Show()
	assert.ErrorIs(t, err, nativedialog.ErrKilled)
	assert.Nil(t, h)
}

func headlessEnv() nativedialog.Env {
	return nativedialog.Env{
		GOOS:     "linux",
		Getenv:   func(string) string { return "" },
		LookPath: func(string) (string, error) { return "", exec.ErrNotFound },
	}
}

func TestNoDisplay(t *testing.T) {
	t.Parallel()

	d := nativedialog.New(nativedialog.WithEnv(headlessEnv()))

	_, err := d.File().OpenSingleFile().Show()
	assert.ErrorIs(t, err, nativedialog.ErrNoImplementation)

	_, err = d.Message().Confirm().Show()
	assert.ErrorIs(t, err, nativedialog.ErrNoImplementation)
}

func TestPreferredBackendUnavailable(t *testing.T) {
	t.Parallel()

	env := headlessEnv()
	env.Getenv = func(k string) string {
		if k == "WAYLAND_DISPLAY" {
			return "wayland-0"
		}
		return ""
	}
	env.LookPath = func(name string) (string, error) {
		if name == "zenity" {
			return "/usr/bin/zenity", nil
		}
		return "", exec.ErrNotFound
	}

	cfg := config.DefaultConfig()
	cfg.Backend.Preferred = "yad"

	_, err := nativedialog.New(nativedialog.WithConfig(cfg), nativedialog.WithEnv(env)).File().OpenSingleFile().Show()
	assert.ErrorIs(t, err, nativedialog.ErrPreferredUnavailable)
}
