package export

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatgrid/internal/geom"
	"heatgrid/internal/multimap"
	"heatgrid/internal/raster"
)

func testWidget(width, height int) (*multimap.Widget[int, raster.RGBA], *multimap.Session[int]) {
	e := multimap.NewEngine([]multimap.Item[int, raster.RGBA]{
		{Key: 0, Data: multimap.Example(8, 8, geom.Point{})},
	}, multimap.Settings[raster.RGBA]{Background: raster.Black, Sentinel: raster.Gold})
	w := multimap.NewWidget(e, multimap.WidgetOptions{Width: width, Height: height})
	return w, w.NewSession()
}

type failingSink struct{ err error }

func (f failingSink) WriteImage(image.Image) error { return f.err }

type recordingText struct{ got []string }

func (r *recordingText) WriteText(s string) error {
	r.got = append(r.got, s)
	return nil
}

func TestCopyToWriter(t *testing.T) {
	w, s := testWidget(16, 8)
	var buf bytes.Buffer
	require.NoError(t, Copy(w, s, WriterSink{W: &buf}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
	assert.Nil(t, s.RenderProblem())
}

func TestCopyFailureIsRecorded(t *testing.T) {
	w, s := testWidget(16, 8)
	boom := errors.New("clipboard owner went away")
	err := Copy(w, s, failingSink{err: boom})
	require.ErrorIs(t, err, boom)

	p := s.RenderProblem()
	require.NotNil(t, p)
	assert.Equal(t, multimap.ProblemClipboardIssue, p.Kind)
	assert.Contains(t, p.Message, "owner went away")

	assert.ErrorIs(t, Copy(w, s, nil), ErrNoSink)
}

func TestCopyRenderProblem(t *testing.T) {
	w, s := testWidget(16, 8)
	s.State.Visible[0] = false
	err := Copy(w, s, WriterSink{W: &bytes.Buffer{}})
	assert.ErrorIs(t, err, multimap.ErrCountIsZero)
}

func TestFileSink(t *testing.T) {
	w, s := testWidget(4, 4)
	dir := filepath.Join(t.TempDir(), "shots")
	sink := &FileSink{Dir: dir, Prefix: "view", Now: func() time.Time {
		return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	}}
	require.NoError(t, Copy(w, s, sink))
	assert.Equal(t, filepath.Join(dir, "view-20240309-140506.000.png"), sink.Last())

	f, err := os.Open(sink.Last())
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
}

func TestCommandSink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no sh")
	}
	out := filepath.Join(t.TempDir(), "piped.png")
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	require.NoError(t, CommandSink{Name: "sh", Args: []string{"-c", "cat > " + out}}.WriteImage(img))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	err = CommandSink{Name: "sh", Args: []string{"-c", "echo nope >&2; exit 3"}}.WriteImage(img)
	assert.ErrorContains(t, err, "nope")
}

func TestDetectClipboardFallback(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("DISPLAY", "")
	fallback := &FileSink{}
	assert.Same(t, fallback, DetectClipboard(fallback))
}

func TestCopyText(t *testing.T) {
	rec := &recordingText{}
	require.NoError(t, CopyText(rec, "MULTIPOINT (1 2)"))
	assert.Equal(t, []string{"MULTIPOINT (1 2)"}, rec.got)
}
