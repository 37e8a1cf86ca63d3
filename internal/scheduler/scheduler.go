// Package scheduler runs named jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ID identifies a scheduled job.
type ID = cron.EntryID

// Entry describes one scheduled job.
type Entry struct {
	ID   ID
	Name string
	Spec string
}

// Scheduler wraps a cron runner. Jobs use standard five-field specs
// ("* * * * *") and descriptors such as "@every 1m".
type Scheduler struct {
	c     *cron.Cron
	log   zerolog.Logger
	mu    sync.Mutex
	names map[ID]Entry
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		c: cron.New(
			cron.WithLogger(cronLogger{log: log}),
			cron.WithChain(cron.Recover(cronLogger{log: log})),
		),
		log:   log,
		names: make(map[ID]Entry),
	}
}

// Add schedules fn under spec. It may be called before or after Start.
func (s *Scheduler) Add(spec, name string, fn func(context.Context)) (ID, error) {
	id, err := s.c.AddFunc(spec, func() {
		s.log.Info().Str("job", name).Msg("job_started")
		fn(context.Background())
	})
	if err != nil {
		return 0, fmt.Errorf("schedule %s: %w", name, err)
	}
	s.mu.Lock()
	s.names[id] = Entry{ID: id, Name: name, Spec: spec}
	s.mu.Unlock()
	return id, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop prevents new runs and waits for running jobs or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.c.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entries lists scheduled jobs ordered by their next run.
func (s *Scheduler) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, 0, len(s.names))
	for _, e := range s.c.Entries() {
		if named, ok := s.names[e.ID]; ok {
			out = append(out, named)
		}
	}
	return out
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
