package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Reloader is satisfied by the catalog holder.
type Reloader interface {
	Reload(ctx context.Context) error
}

type Scheduler struct {
	spec     string
	reloader Reloader
	timeout  time.Duration
	c        *cron.Cron
}

// NewScheduler reloads the catalog on spec, a six-field cron expression with seconds.
func NewScheduler(spec string, reloader Reloader) *Scheduler {
	return &Scheduler{
		spec:     spec,
		reloader: reloader,
		timeout:  time.Minute,
		c:        cron.New(cron.WithSeconds()),
	}
}

// Start registers the reload job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.c.AddFunc(s.spec, s.runReload)
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return err
	}

	log.Printf("Cron scheduler started (catalog reload %q)", s.spec)
	s.c.Start()
	return nil
}

// Stop waits for a running reload to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}

func (s *Scheduler) runReload() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.reloader.Reload(ctx); err != nil {
		log.Printf("Catalog reload failed: %v", err)
		return
	}
	log.Printf("Catalog reload completed in %s", time.Since(start).Round(time.Millisecond))
}
