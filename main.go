package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ItsNotACoffee/HoloPlayground/internal/config"
	"github.com/ItsNotACoffee/HoloPlayground/internal/input"
	feed "github.com/ItsNotACoffee/HoloPlayground/internal/net"
	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
	"github.com/ItsNotACoffee/HoloPlayground/internal/state"
	"github.com/ItsNotACoffee/HoloPlayground/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	discover := flag.Duration("discover", 0, "list pointer feeds on the local network for this long and exit")
	flag.Parse()

	if *discover > 0 {
		runDiscover(*discover)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)
	paint.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runHost(ctx, cfg); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		// Route the standard logger used by the network glue to the same file.
		log.SetOutput(w)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runHost(ctx context.Context, cfg config.Config) error {
	log.Println("Starting AirPaint")

	layer := ui.NewStrokeLayer()
	queue := input.NewQueue()
	canvas := paint.DefaultCanvas()
	canvas.Color = paint.ColorOf(cfg.BrushColor())
	canvas.Width = cfg.BrushWidth

	tracker, err := paint.New(layer, cfg.SampleInterval, paint.WithCanvas(canvas))
	if err != nil {
		return err
	}

	history := state.NewBoard()
	tracker.OnStrokeEnd(func(s paint.Snapshot) {
		history.Commit(state.FromSnapshot(s))
	})
	tracker.OnReset(history.Clear)

	surface := state.NewSurface(state.DrawingArea{
		X:      cfg.Surface.X,
		Y:      cfg.Surface.Y,
		Width:  cfg.Surface.Width,
		Height: cfg.Surface.Height,
	})

	var feedURL string
	if cfg.Remote.Enabled {
		feedURL, err = startFeed(ctx, cfg.Remote, queue)
		if err != nil {
			return err
		}
	}

	ui.RunApp(ctx, cfg, ui.Host{
		Tracker: tracker,
		Queue:   queue,
		Layer:   layer,
		Surface: surface,
		History: history,
	}, func(board *ui.BoardWidget) {
		if feedURL != "" {
			board.SetStatus("Pointer feed: " + feedURL)
		}
	})
	return nil
}

// startFeed serves the websocket pointer feed and, when configured,
// advertises it over mDNS. It returns the URL devices should connect to.
func startFeed(ctx context.Context, cfg config.RemoteConfig, queue *input.Queue) (string, error) {
	url, port, err := feed.LocalFeedURL(cfg.Listen)
	if err != nil {
		return "", err
	}

	server := feed.NewFeedServer(queue)
	go func() {
		if err := server.ListenAndServe(ctx, cfg.Listen); err != nil {
			log.Printf("Pointer feed stopped: %v", err)
		}
	}()

	if cfg.Advertise {
		mdnsServer, err := feed.Advertise(port)
		if err != nil {
			log.Printf("Failed to advertise pointer feed: %v", err)
		} else {
			go func() {
				<-ctx.Done()
				mdnsServer.Shutdown()
			}()
			log.Println("Advertising pointer feed over mDNS")
		}
	}
	return url, nil
}

func runDiscover(timeout time.Duration) {
	var found []string
	err := feed.Browse(timeout, func(url string) {
		found = append(found, url)
	})
	if err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}
	if len(found) == 0 {
		fmt.Println("No pointer feeds found.")
		return
	}
	fmt.Println(strings.Join(found, "\n"))
}
