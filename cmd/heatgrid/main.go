package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"heatgrid/internal/config"
	"heatgrid/internal/export"
	"heatgrid/internal/geom"
	"heatgrid/internal/loader"
	"heatgrid/internal/logger"
	"heatgrid/internal/multimap"
	"heatgrid/internal/raster"
	"heatgrid/internal/tui"
	"heatgrid/internal/watch"
)

// Size of a headless export when neither --size nor the config fixes one.
const (
	defaultExportWidth  = 640
	defaultExportHeight = 480
)

type options struct {
	configPath string
	logFile    string
	exportPath string
	size       string
	watch      bool
	demo       bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "heatgrid [flags] [file...]",
		Short: "Explore gridded heatmaps in the terminal",
		Long: `heatgrid shows one or more numeric grids side by side as heatmaps.
Files may be CSV (x, y, value columns), JSON grids or WKT point sets.
Pan with the arrow keys, zoom with the wheel, click cells to select them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", defaultConfigPath(), "TOML settings file; a missing file means defaults")
	f.StringVar(&o.logFile, "log-file", "", "write debug logs to this file")
	f.StringVar(&o.exportPath, "export", "", "render one PNG to this path and exit")
	f.StringVar(&o.size, "size", "", "fixed raster size as WxH")
	f.BoolVar(&o.watch, "watch", false, "reload when an input file changes")
	f.BoolVar(&o.demo, "demo", false, "show built in example data")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "heatgrid", "config.toml")
}

func run(ctx context.Context, o options, paths []string) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.size != "" {
		w, h, err := parseSize(o.size)
		if err != nil {
			return err
		}
		cfg.View.Width, cfg.View.Height = w, h
	}
	if len(paths) == 0 {
		o.demo = true
	}

	if o.logFile != "" {
		f, err := tea.LogToFile(o.logFile, "heatgrid")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger.Set(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	data, err := buildData(cfg, paths, o.demo)
	if err != nil {
		return err
	}
	logger.L().Info("loaded", "datasets", len(data.Engine.Items), "files", len(paths))

	if o.exportPath != "" {
		return exportOnce(cfg, data, o.exportPath)
	}
	return runTUI(ctx, cfg, data, o, paths)
}

// parseSize reads "WxH" with both sides positive.
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: must be positive", s)
	}
	return w, h, nil
}

// buildData loads the files (or the demo set) and builds the engine.
func buildData(cfg *config.Config, paths []string, demo bool) (tui.Data, error) {
	var srcs []loader.Source
	if demo {
		srcs = demoSources()
	} else {
		var err error
		if srcs, err = loader.LoadAll(paths); err != nil {
			return tui.Data{}, err
		}
	}

	g, err := cfg.Gradient()
	if err != nil {
		return tui.Data{}, err
	}
	bg, err := cfg.Background()
	if err != nil {
		return tui.Data{}, err
	}
	fo, err := cfg.FontOptions()
	if err != nil {
		return tui.Data{}, err
	}

	lower, upper := cfg.Colorbar.Lower, cfg.Colorbar.Upper
	if lower == upper {
		lower, upper = loader.Limits(srcs)
	}
	items := loader.Items(srcs, loader.Style{
		Gradient:        g,
		Background:      bg,
		Font:            fo,
		ShowCoordinates: cfg.Font.ShowCoordinates,
		Lower:           lower,
		Upper:           upper,
	})
	if demo {
		items = append(items, demoItems()...)
	}
	if len(items) == 0 {
		return tui.Data{}, errors.New("no datasets")
	}

	settings, err := cfg.Settings(lower, upper)
	if err != nil {
		return tui.Data{}, err
	}
	return tui.Data{Engine: multimap.NewEngine(items, settings), Sources: srcs}, nil
}

func demoSources() []loader.Source {
	return []loader.Source{{
		Key:     "circle",
		Title:   "Circle",
		Heatmap: *multimap.ExampleCircle(40, 40),
		Labels:  map[geom.Point]string{{X: 20, Y: 20}: "1.0"},
	}}
}

// demoItems are precolored datasets placed right of the circle.
func demoItems() []multimap.Item[string, raster.RGBA] {
	dist := multimap.ExampleDistance(20, 20, geom.Point{X: 10, Y: 10})
	dist.Anchor = geom.Point{X: 60}
	return []multimap.Item[string, raster.RGBA]{
		{Key: "oklab", Data: multimap.Example(20, 40, geom.Point{X: 40})},
		{Key: "distance", Data: dist},
	}
}

// exportOnce renders the home view once and writes it as PNG.
func exportOnce(cfg *config.Config, data tui.Data, path string) error {
	opts := cfg.WidgetOptions()
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = defaultExportWidth, defaultExportHeight
	}
	w := multimap.NewWidget(data.Engine, opts)
	s := w.NewSession()
	buf, err := w.Snapshot(s)
	if err != nil {
		return err
	}
	if err := export.WritePNG(path, raster.ToImage(buf)); err != nil {
		return err
	}
	logger.L().Info("exported", "path", path, "width", opts.Width, "height", opts.Height)
	return nil
}

func runTUI(ctx context.Context, cfg *config.Config, data tui.Data, o options, paths []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := tui.New(data, tui.Options{
		Widget:    cfg.WidgetOptions(),
		CopyDelay: cfg.View.CopyDelay(),
		Images:    export.DetectClipboard(&export.FileSink{Dir: cfg.Export.Dir, Prefix: cfg.Export.Prefix}),
		Title:     title(paths, o.demo),
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))

	if o.watch && !o.demo {
		w, err := watch.New(paths, watch.DefaultDelay)
		if err != nil {
			return err
		}
		logger.L().Info("watching", "files", w.Files())
		go func() {
			err := w.Run(ctx, func(path string) {
				logger.L().Info("reloading", "changed", path)
				d, err := buildData(cfg, paths, false)
				p.Send(tui.ReloadMsg{Data: d, Err: err})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.L().Warn("watcher stopped", "err", err)
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func title(paths []string, demo bool) string {
	if demo {
		return "heatgrid demo"
	}
	if len(paths) == 1 {
		return filepath.Base(paths[0])
	}
	return "heatgrid"
}
