// Package schedule fires the midnight day rollover for a running TUI.
package schedule

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// midnightSpec runs at 00:00:00 every day (cron with seconds).
const midnightSpec = "0 0 0 * * *"

// RolloverMsg is a tea.Msg sent when the local date changes.
type RolloverMsg struct {
	At time.Time
}

// Rollover wraps a cron scheduler whose only job signals midnight. The job
// never touches tracker state; it queues a tick that Wait turns into a
// RolloverMsg on the Bubble Tea event loop.
type Rollover struct {
	cron    *cron.Cron
	loc     *time.Location
	ticks   chan time.Time
	log     *zap.Logger
	mu      sync.Mutex
	running bool
}

// NewRollover creates a stopped scheduler in loc. A nil logger is replaced
// by a no-op one.
func NewRollover(loc *time.Location, log *zap.Logger) *Rollover {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Rollover{
		cron:  cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		loc:   loc,
		ticks: make(chan time.Time, 1),
		log:   log,
	}
}

// Start registers the midnight job, starts the scheduler and returns the
// command that waits for the first rollover. Calling Start on a running
// scheduler returns nil.
func (r *Rollover) Start() (tea.Cmd, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil, nil
	}
	if _, err := r.cron.AddFunc(midnightSpec, func() { r.Fire(time.Now().In(r.loc)) }); err != nil {
		return nil, fmt.Errorf("registering rollover job: %w", err)
	}
	r.cron.Start()
	r.running = true
	r.log.Debug("rollover scheduler started", zap.Time("next", NextRollover(time.Now().In(r.loc))))

	return r.Wait(), nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (r *Rollover) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.running = false
	r.log.Debug("rollover scheduler stopped")
}

// Fire queues a rollover. Ticks that arrive before the previous one was
// consumed coalesce into it.
func (r *Rollover) Fire(at time.Time) {
	select {
	case r.ticks <- at:
	default:
	}
}

// Wait returns a tea.Cmd that blocks until the next rollover. Call it again
// after handling a RolloverMsg to keep listening.
func (r *Rollover) Wait() tea.Cmd {
	return func() tea.Msg {
		at, ok := <-r.ticks
		if !ok {
			return nil
		}
		return RolloverMsg{At: at}
	}
}

// NextRollover returns the first midnight strictly after from, in from's
// location.
func NextRollover(from time.Time) time.Time {
	parser := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)
	sched, err := parser.Parse(midnightSpec)
	if err != nil {
		// midnightSpec is a constant; a parse failure is a programming error.
		panic(err)
	}
	return sched.Next(from)
}
