package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/oasis/asset"
	"github.com/lixenwraith/oasis/audio"
	"github.com/lixenwraith/oasis/config"
	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/engine"
	"github.com/lixenwraith/oasis/input"
	"github.com/lixenwraith/oasis/logging"
	"github.com/lixenwraith/oasis/network"
	"github.com/lixenwraith/oasis/render"
)

// options are the command-line overrides
type options struct {
	configPath string
	debug      bool
	seed       uint64
	spectator  string
	mute       bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("oasis", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "YAML config file (defaults built in)")
	fs.BoolVar(&o.debug, "debug", false, "Write a debug log file")
	fs.Uint64Var(&o.seed, "seed", 0, "Placement seed, 0 picks one")
	fs.StringVar(&o.spectator, "spectator", "", "Spectator websocket listen address, e.g. :8090")
	fs.BoolVar(&o.mute, "mute", false, "Disable audio")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

// loadConfig reads the config file when given and applies flag overrides
func loadConfig(o options) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.spectator != "" {
		cfg.Spectator.Addr = o.spectator
	}
	if o.mute {
		cfg.Audio.Mute = true
	}
	return cfg, nil
}

func resolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "oasis: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(opts.debug, cfg.Log.Dir)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := resolveSeed(opts.seed)
	logger.Info("starting", zap.Uint64("seed", seed), zap.String("config", opts.configPath))

	game, err := engine.NewGame(cfg, rand.New(rand.NewPCG(seed, seed)), logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	// Normal exit and crash paths both restore the terminal
	core.SetCrashHook(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	var player engine.AudioPlayer = audio.Silent{}
	if !cfg.Audio.Mute {
		sm := audio.NewSoundManager(logger.Named("audio"))
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing silent", zap.Error(err))
		} else {
			player = sm
			defer sm.Cleanup()
		}
	}

	term := render.NewTerminal(screen, asset.NewCachingLoader[render.Glyph](render.GlyphLoader{}), logger.Named("render"))
	poller := input.NewPoller(screen, input.DefaultKeyTable(), logger.Named("input"))

	renderers := []engine.Renderer{term}
	var spectator *network.Spectator
	if cfg.Spectator.Addr != "" {
		spectator = network.NewSpectator(cfg.Spectator.Addr, cfg.Spectator.Path, logger.Named("spectator"))
		renderers = append(renderers, spectator)
	}

	scheduler := engine.NewScheduler(game, cfg.Timing.SimHz, cfg.Timing.CountdownHz,
		poller.Actions(), player, logger.Named("engine"), renderers...)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(core.Guard(func() error {
		return scheduler.Run(ctx)
	}))
	g.Go(core.Guard(func() error {
		return poller.Run(ctx)
	}))
	// PollEvent only returns after Fini
	g.Go(core.Guard(func() error {
		<-ctx.Done()
		screen.Fini()
		return nil
	}))
	if spectator != nil {
		g.Go(core.Guard(func() error {
			return spectator.ListenAndServe(ctx)
		}))
	}

	err = g.Wait()
	final := game.Snapshot()
	logger.Info("stopped",
		zap.Stringer("terminal", final.HUD.Terminal),
		zap.Int("score", final.HUD.Score),
		zap.Uint64("tick", final.Tick))
	logger.Info("engine metrics", game.Metrics().Fields()...)
	if spectator != nil {
		logger.Info("spectator metrics", spectator.Metrics().Fields()...)
	}

	if errors.Is(err, engine.ErrQuit) {
		return nil
	}
	return err
}
