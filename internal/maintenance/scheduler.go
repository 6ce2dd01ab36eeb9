// Package maintenance wires up the cron job that purges soft-deleted
// applications once their retention window has passed.
package maintenance

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Purger is implemented by applications.Repo.
type Purger interface {
	PurgeDeleted(ctx context.Context, retentionDays int) (int64, error)
}

// Scheduler wraps robfig/cron and manages the purge loop.
type Scheduler struct {
	cron          *cron.Cron
	purger        Purger
	retentionDays int
	spec          string
}

// New creates a Scheduler that fires nightly.
func New(purger Purger, retentionDays int) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithLogger(cron.DefaultLogger)),
		purger:        purger,
		retentionDays: retentionDays,
		spec:          "@daily",
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runPurge(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("[maintenance] Cron started — spec: %s retention_days: %d", s.spec, s.retentionDays)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[maintenance] Cron stopped")
}

func (s *Scheduler) runPurge(ctx context.Context) {
	n, err := s.purger.PurgeDeleted(ctx, s.retentionDays)
	if err != nil {
		log.Printf("[maintenance] purge failed: %v", err)
		return
	}
	log.Printf("[maintenance] purge removed %d applications", n)
}
