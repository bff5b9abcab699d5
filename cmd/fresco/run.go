package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/frescoui/fresco/pkg/config"
	"github.com/frescoui/fresco/pkg/dashboard"
	"github.com/frescoui/fresco/pkg/debugserver"
	"github.com/frescoui/fresco/pkg/definition"
	"github.com/frescoui/fresco/pkg/engine"
	"github.com/frescoui/fresco/pkg/filewatch"
	"github.com/frescoui/fresco/pkg/logging"
	"github.com/frescoui/fresco/pkg/render"
	"github.com/frescoui/fresco/pkg/render/shm"
	rtcell "github.com/frescoui/fresco/pkg/render/tcell"
	"github.com/frescoui/fresco/pkg/render/term"
	"github.com/frescoui/fresco/pkg/state"
	"github.com/frescoui/fresco/pkg/terminal"
	"github.com/frescoui/fresco/pkg/ui/theme"
)

func cmdRun(out *terminal.Writer, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path")
	backend := fs.String("backend", "", "renderer backend: tcell, term or shm")
	themeName := fs.String("theme", "", "color theme")
	debugAddr := fs.String("debug-addr", "", "debug HTTP server address")
	statePath := fs.String("state", "", "SQLite state database path")
	shmPath := fs.String("shm-path", "", "shared-memory segment path")
	maxFPS := fs.Int("max-fps", 0, "frame rate cap")
	forcePoll := fs.Bool("poll", false, "force stat polling instead of fsnotify")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *themeName != "" {
		cfg.Theme = *themeName
	}
	if *debugAddr != "" {
		cfg.Debug.Addr = *debugAddr
	}
	if *statePath != "" {
		cfg.State.Path = *statePath
	}
	if *shmPath != "" {
		cfg.Shm.Path = *shmPath
	}
	if *maxFPS > 0 {
		cfg.Render.MaxFPS = *maxFPS
	}
	if *forcePoll {
		cfg.Watch.ForcePoll = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// With no definition the demo runs from a scratch directory, wired
	// to a simulated data feed.
	entry := fs.Arg(0)
	var tick dashboard.TickFunc
	if entry == "" {
		dir, err := os.MkdirTemp("", "fresco-demo-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
		if entry, err = writeDemo(dir); err != nil {
			return err
		}
		tick = demoFeed()
		out.Info("no definition given, running the demo from %s", dir)
	}

	var logger *logging.Logger
	if cfg.Log.Dir != "" {
		logger, err = logging.NewLogger(cfg.Log.Dir, logging.NewSessionID())
		if err != nil {
			out.Warn("logging disabled: %v", err)
		} else {
			logger.SetMinLevel(logging.ParseLevel(cfg.Log.Level))
			defer logger.Close()
		}
	}

	watcher, err := filewatch.New(filewatch.Options{
		Debounce:  cfg.Watch.Debounce.Std(),
		ForcePoll: cfg.Watch.ForcePoll,
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	eng := engine.New(engine.Options{
		Compile: definition.Compile,
		Watcher: watcher,
		Logger:  logger,
		Theme:   theme.ByName(cfg.Theme),
	})
	// A failed first load still runs: the overlay shows the error and
	// the watcher picks up the fix.
	if err := eng.Load(entry); err != nil {
		logger.Warn(logging.CategoryReload, "initial_load_failed", err.Error(), nil)
	}

	var store *state.Store
	if cfg.State.Path != "" {
		store, err = state.Open(cfg.State.Path)
		if err != nil {
			return fmt.Errorf("opening state database: %w", err)
		}
		defer store.Close()
		if err := store.Restore(eng.DashboardState()); err != nil {
			out.Warn("state restore failed: %v", err)
		}
	}

	renderer, err := buildRenderer(out, cfg)
	if err != nil {
		return fmt.Errorf("starting %s renderer: %w", cfg.Backend, err)
	}

	rt := dashboard.New(dashboard.Options{
		Renderer: renderer,
		Engine:   eng,
		Logger:   logger,
		Tick:     tick,
		TickRate: cfg.Render.TickRate.Std(),
		MaxFPS:   cfg.Render.MaxFPS,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Debug.Addr != "" {
		dbg := debugserver.New(debugserver.Options{
			Addr:   cfg.Debug.Addr,
			Logger: logger,
			State:  rt.StateSnapshot,
			Frame:  rt.FrameSnapshot,
		})
		g.Go(func() error { return dbg.Start(gctx) })
	}
	g.Go(func() error {
		defer stop() // quitting the dashboard stops the debug server too
		err := rt.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	runErr := g.Wait()
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if store != nil {
		if err := store.Save(eng.DashboardState()); err != nil {
			out.Warn("state save failed: %v", err)
		}
	}
	return runErr
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func buildRenderer(out *terminal.Writer, cfg *config.Config) (render.Renderer, error) {
	switch cfg.Backend {
	case "tcell":
		return rtcell.New()
	case "term":
		return term.New(term.Options{})
	case "shm":
		path := cfg.Shm.Path
		if path == "" {
			path = filepath.Join(os.TempDir(), "fresco-"+uuid.NewString()+".shm")
		}
		out.Info("shared-memory segment: %s", path)
		out.Info("attach with: fresco attach -shm-path %s", path)
		return shm.NewWriter(path, shm.WriterOptions{
			MaxWidth:        cfg.Shm.MaxWidth,
			MaxHeight:       cfg.Shm.MaxHeight,
			RemoveOnCleanup: true,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
