//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"dotlcd/app"
	"dotlcd/hal"
	"dotlcd/internal/buildinfo"
	"dotlcd/internal/mirror"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := app.DefaultConfig()
	var (
		headless    hal.HeadlessConfig
		window      hal.WindowConfig
		mirrorAddr  string
		seed        uint
		showVersion bool
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Frame rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.IntVar(&cfg.Screen.Palette, "palette", cfg.Screen.Palette, "Palette preset (0-4).")
	flag.IntVar(&cfg.Screen.ScreenWidth, "screen-width", cfg.Screen.ScreenWidth, "Physical screen width in pixels.")
	flag.IntVar(&cfg.Screen.ScreenHeight, "screen-height", cfg.Screen.ScreenHeight, "Physical screen height in pixels.")
	flag.IntVar(&cfg.Screen.Width, "grid-width", cfg.Screen.Width, "Logical grid width in dots.")
	flag.IntVar(&cfg.Screen.Height, "grid-height", cfg.Screen.Height, "Logical grid height in dots.")
	flag.IntVar(&cfg.Screen.DotSize, "dot-size", cfg.Screen.DotSize, "Dot size in pixels.")
	flag.IntVar(&cfg.Screen.DotSpacing, "dot-spacing", cfg.Screen.DotSpacing, "Gap between dots in pixels.")
	flag.IntVar(&window.Scale, "scale", 2, "Window scale factor.")
	flag.UintVar(&seed, "seed", 0, "Food generator seed (0 = fixed default).")
	flag.StringVar(&mirrorAddr, "mirror", os.Getenv("DOTLCD_MIRROR_ADDR"), "Serve bus traffic to websocket viewers on this address (e.g. :8080).")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.String())
		return
	}
	cfg.Seed = uint32(seed)
	headless.PanelWidth, headless.PanelHeight = cfg.Screen.ScreenWidth, cfg.Screen.ScreenHeight
	window.PanelWidth, window.PanelHeight = cfg.Screen.ScreenWidth, cfg.Screen.ScreenHeight

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	newApp := func(h hal.HAL) (func() error, error) {
		c := cfg
		var m *mirror.Mirror
		if mirrorAddr != "" {
			c.WrapPanel = func(p hal.Panel) hal.Panel {
				m = mirror.New(p, h.Logger())
				return m
			}
		}
		step, err := app.New(h, c)
		if err != nil {
			return nil, err
		}
		if m != nil {
			serveMirror(gctx, g, mirrorAddr, m, h.Logger())
		}
		return step, nil
	}

	var err error
	if headless.Enabled {
		err = hal.RunHeadless(gctx, newApp, headless)
	} else {
		err = hal.RunWindow(newApp, window)
	}
	stop()
	if werr := g.Wait(); werr != nil && (err == nil || errors.Is(err, context.Canceled)) {
		err = werr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveMirror(ctx context.Context, g *errgroup.Group, addr string, m *mirror.Mirror, log hal.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/ws", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g.Go(func() error {
		log.WriteLineString("mirror: listening on " + addr + "/ws")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mirror: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = m.Close()
		return srv.Shutdown(shutdownCtx)
	})
}
