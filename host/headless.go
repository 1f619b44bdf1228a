package host

import (
	"context"
	"time"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Ticks stops the run after N frames. 0 runs until the context ends.
	Ticks uint64
	// EnterARAt starts a simulated session at the given tick (0 = never).
	EnterARAt uint64
	// SelectAt fires the select trigger at the given tick (0 = never).
	SelectAt uint64
	// ExitARAt ends the session at the given tick (0 = never).
	ExitARAt uint64
}

// RunHeadless drives the application step without a window, one frame per
// tick at the configured TPS. Used for smoke runs and CI.
func RunHeadless(ctx context.Context, h *Host, step StepFunc, cfg HeadlessConfig) error {
	d := time.Second / time.Duration(h.cfg.TPS)
	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			h.EndSession()
			return ctx.Err()
		case <-t.C:
			tick := h.tick + 1
			if cfg.EnterARAt > 0 && tick == cfg.EnterARAt {
				h.StartSession()
			}
			if cfg.ExitARAt > 0 && tick == cfg.ExitARAt {
				h.EndSession()
			}
			if err := h.step(step); err != nil {
				h.EndSession()
				return err
			}
			if cfg.SelectAt > 0 && tick == cfg.SelectAt {
				h.emitSelect()
			}
			if cfg.Ticks > 0 && h.tick >= cfg.Ticks {
				h.EndSession()
				return nil
			}
		}
	}
}
