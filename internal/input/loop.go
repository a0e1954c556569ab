package input

import (
	"context"
	"fmt"
	"time"
)

// LoopConfig controls the tick loop.
type LoopConfig struct {
	Hz int
	// Ticks stops the loop after that many ticks when non-zero.
	Ticks uint64
}

// Run calls step once per tick with the elapsed seconds since the previous
// tick until ctx is done. It returns ctx.Err() on cancellation and nil when
// the configured tick count is reached.
func Run(ctx context.Context, cfg LoopConfig, step func(dt float64)) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid tick rate: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	last := time.Now()
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			dt := now.Sub(last).Seconds()
			last = now
			step(dt)
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
