package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/peyknews/peyk/app/database"
)

// Runnable is a long-running component that exits when its context is
// cancelled. Both the feed monitor and the stage workers satisfy it.
type Runnable interface {
	Run(ctx context.Context)
}

// Controller watches the persisted bot status and keeps the pipeline
// components running exactly while it is ON. Turning the bot OFF stops
// all components and waits for them to finish their current entry.
type Controller struct {
	state        database.StateRepository
	runnables    []Runnable
	pollInterval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewController(state database.StateRepository, runnables []Runnable) *Controller {
	return &Controller{
		state:        state,
		runnables:    runnables,
		pollInterval: time.Second,
	}
}

// Run polls the run state until ctx is done, starting and stopping the
// managed components as the bot status flips.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.stop()
			return
		case <-ticker.C:
			c.reconcile(ctx)
		}
	}
}

func (c *Controller) reconcile(ctx context.Context) {
	state, err := c.state.Get()
	if err != nil {
		slog.Error("Failed to read run state", "error", err)
		return
	}

	running := c.cancel != nil

	switch {
	case state.BotStatus == database.BotOn && !running:
		c.start(ctx)
	case state.BotStatus != database.BotOn && running:
		c.stop()
	}
}

func (c *Controller) start(ctx context.Context) {
	slog.Info("Bot switched ON, starting pipeline", "components", len(c.runnables))

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	for _, r := range c.runnables {
		c.wg.Add(1)
		go func(r Runnable) {
			defer c.wg.Done()
			r.Run(runCtx)
		}(r)
	}
}

func (c *Controller) stop() {
	if c.cancel == nil {
		return
	}

	slog.Info("Bot switched OFF, stopping pipeline")

	c.cancel()
	c.wg.Wait()
	c.cancel = nil
}
