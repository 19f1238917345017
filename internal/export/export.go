// Package export hands rendered frames and selections to the clipboard or
// to files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"

	"heatgrid/internal/logger"
	"heatgrid/internal/multimap"
	"heatgrid/internal/raster"
)

// Sink receives an exported image.
type Sink interface {
	WriteImage(img image.Image) error
}

// WriterSink encodes PNG into W.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) WriteImage(img image.Image) error {
	return png.Encode(s.W, img)
}

func (s WriterSink) String() string { return "writer" }

// FileSink writes each image to a new timestamped PNG in Dir.
type FileSink struct {
	Dir    string
	Prefix string
	// Now defaults to time.Now.
	Now func() time.Time

	last string
}

func (s *FileSink) WriteImage(img image.Image) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	prefix := s.Prefix
	if prefix == "" {
		prefix = "heatgrid"
	}
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return err
		}
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("%s-%s.png", prefix, now().Format("20060102-150405.000")))
	if err := WritePNG(path, img); err != nil {
		return err
	}
	s.last = path
	return nil
}

// Last returns the path of the most recent file.
func (s *FileSink) Last() string { return s.last }

func (s *FileSink) String() string { return "file in " + s.Dir }

// WritePNG encodes img into a new file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// CommandSink pipes PNG data into an external program, such as wl-copy.
type CommandSink struct {
	Name string
	Args []string
}

func (s CommandSink) WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	cmd := exec.Command(s.Name, s.Args...)
	cmd.Stdin = &buf
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("%s: %w: %s", s.Name, err, msg)
		}
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	return nil
}

func (s CommandSink) String() string { return s.Name }

// clipboardCommands are tried in order; env must be set for a candidate.
var clipboardCommands = []struct {
	env  string
	sink CommandSink
}{
	{"WAYLAND_DISPLAY", CommandSink{Name: "wl-copy", Args: []string{"--type", "image/png"}}},
	{"DISPLAY", CommandSink{Name: "xclip", Args: []string{"-selection", "clipboard", "-t", "image/png"}}},
}

// DetectClipboard returns an image clipboard command available on this
// system, or fallback when there is none.
func DetectClipboard(fallback Sink) Sink {
	for _, c := range clipboardCommands {
		if os.Getenv(c.env) == "" {
			continue
		}
		if _, err := exec.LookPath(c.sink.Name); err == nil {
			return c.sink
		}
	}
	return fallback
}

// ErrNoSink is returned when an export has nowhere to go.
var ErrNoSink = errors.New("export: no sink")

// Copy renders the session's current view and hands it to sink. A render
// problem is returned as is; a sink failure is also recorded on the session
// as a clipboard issue.
func Copy[K comparable](w *multimap.Widget[K, raster.RGBA], s *multimap.Session[K], sink Sink) error {
	if sink == nil {
		s.ReportExportFailure(ErrNoSink)
		return ErrNoSink
	}
	buf, err := w.Snapshot(s)
	if err != nil {
		return err
	}
	if err := sink.WriteImage(raster.ToImage(buf)); err != nil {
		logger.L().Warn("export failed", "sink", fmt.Sprint(sink), "err", err)
		s.ReportExportFailure(err)
		return err
	}
	logger.L().Info("exported view", "sink", fmt.Sprint(sink), "width", buf.Width, "height", buf.Height)
	return nil
}

// TextSink receives exported text.
type TextSink interface {
	WriteText(text string) error
}

// SystemClipboard writes text through the platform clipboard tools.
type SystemClipboard struct{}

func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return errors.New("export: no text clipboard available")
	}
	return clipboard.WriteAll(text)
}

// CopyText puts text on sink, logging the outcome.
func CopyText(sink TextSink, text string) error {
	if err := sink.WriteText(text); err != nil {
		logger.L().Warn("copy text failed", "err", err)
		return err
	}
	logger.L().Info("copied text", "bytes", len(text))
	return nil
}
