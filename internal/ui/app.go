package ui

import (
	"context"
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/ItsNotACoffee/HoloPlayground/internal/config"
	"github.com/ItsNotACoffee/HoloPlayground/internal/input"
	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
	"github.com/ItsNotACoffee/HoloPlayground/internal/state"
)

// Host bundles what the window drives.
type Host struct {
	Tracker *paint.Tracker
	Queue   *input.Queue
	Layer   *StrokeLayer
	Surface *state.Surface
	History *state.Board
}

// RunApp opens the board window and blocks until it is closed. ready is
// called with the board once the window content exists, before the loop
// starts.
func RunApp(ctx context.Context, cfg config.Config, h Host, ready func(*BoardWidget)) {
	myApp := app.New()
	myWindow := myApp.NewWindow("AirPaint")
	myWindow.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	// Create the interactive board widget
	board := NewBoardWidget(h.Tracker, h.Queue, h.Surface, h.Layer)

	// Create the toolbar and pass it a reference to the board
	toolbar := NewToolbar(board, h.History, myWindow)

	// Set up the main layout
	content := container.NewBorder(toolbar, board.Status(), nil, nil, board)
	myWindow.SetContent(content)

	if ready != nil {
		ready(board)
	}

	ctx, cancel := context.WithCancel(ctx)
	myWindow.SetOnClosed(cancel)
	go func() {
		err := input.Run(ctx, input.LoopConfig{Hz: cfg.TickRate}, func(dt float64) {
			fyne.DoAndWait(func() { board.Tick(dt) })
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("tick loop stopped", "err", err)
		}
		// Closing the window and cancelling ctx both end here.
		fyne.Do(myApp.Quit)
	}()

	myWindow.ShowAndRun()
	cancel()
}
