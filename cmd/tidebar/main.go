// SPDX-License-Identifier: Unlicense OR MIT

// Command tidebar renders a status bar into a shared memory buffer,
// following the workspaces of a running Hyprland instance.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"tidebar.org/bar"
	"tidebar.org/geom"
	"tidebar.org/internal/config"
	"tidebar.org/internal/hypr"
	"tidebar.org/paint"
	"tidebar.org/shm"
	"tidebar.org/widget"
)

var (
	configPath = flag.String("config", "", "configuration file (default $XDG_CONFIG_HOME/tidebar/config.toml)")
	outPath    = flag.String("o", "", "write every presented frame as a PNG to this file")
	once       = flag.Bool("once", false, "render a single frame and exit")
	verbose    = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Parse()
	log.SetPrefix("tidebar: ")
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := mainErr(ctx)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}

func mainErr(ctx context.Context) error {
	path := *configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	widgets, ws, err := cfg.Build()
	if err != nil {
		return err
	}
	buf, err := shm.NewBuffer("tidebar", cfg.Bar.Width, cfg.Bar.Height)
	if err != nil {
		return err
	}
	defer buf.Close()
	canvas := paint.NewCanvas(buf, buf.Pix, buf.Size())
	b := bar.New(bar.Options{
		Interval:   cfg.Bar.Interval.Duration,
		Background: cfg.Bar.Bg,
		Verbose:    *verbose,
	}, canvas, widgets...)
	p := &snapshot{path: *outPath, verbose: *verbose}

	if *once {
		damage, full, err := b.Frame()
		if err != nil {
			log.Print(err)
		}
		return p.Present(canvas, damage, full)
	}

	g, ctx := errgroup.WithContext(ctx)
	updates := make(chan func())
	if ws != nil {
		w, err := hypr.NewWorker()
		switch {
		case errors.Is(err, hypr.ErrNotRunning):
			log.Printf("%v; workspaces stay empty", err)
		case err != nil:
			return err
		default:
			w.Verbose = *verbose
			events := make(chan hypr.Event)
			g.Go(func() error {
				return w.Run(ctx, events)
			})
			g.Go(func() error {
				return forward(ctx, b, ws, events, updates)
			})
		}
	}
	g.Go(func() error {
		return b.Run(ctx, p, updates)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// forward turns workspace events into updates run by the frame loop.
func forward(ctx context.Context, b *bar.Bar, ws *widget.Workspaces, events <-chan hypr.Event, updates chan<- func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			f := func() {
				if ws.Apply(ev) {
					b.Invalidate()
				}
			}
			select {
			case updates <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// snapshot presents frames by writing the canvas to a PNG file. With
// no path it only logs the damage.
type snapshot struct {
	path    string
	verbose bool
	frames  int
}

func (s *snapshot) Present(c *paint.Canvas, damage []geom.Rect[int], full bool) error {
	s.frames++
	if s.verbose {
		log.Printf("frame %d: damage %v full %v", s.frames, damage, full)
	}
	if s.path == "" {
		return nil
	}
	if err := writePNG(s.path, c); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
