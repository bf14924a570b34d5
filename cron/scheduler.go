package cron

import (
	"context"
	"log"

	"matchpoint-api/services"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the periodic auto-validation sweep. Stop cancels the
// base context so a sweep in flight aborts between matches and the next
// run picks up from DB state.
type Scheduler struct {
	cron                  *cron.Cron
	autoValidationService *services.AutoValidationService
	ctx                   context.Context
	cancel                context.CancelFunc
}

func NewScheduler(autoValidationService *services.AutoValidationService) *Scheduler {
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:                  c,
		autoValidationService: autoValidationService,
		ctx:                   ctx,
		cancel:                cancel,
	}
}

// Start schedules the hourly sweep and starts the cron loop.
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// At minute 0 of every hour.
	_, err := s.cron.AddFunc("0 0 * * * *", s.runSweep)
	if err != nil {
		log.Printf("Error scheduling auto-validation job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")

	return nil
}

// Stop shuts down the cron loop and aborts any sweep in flight.
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cancel()
	<-s.cron.Stop().Done()
	log.Println("Cron scheduler stopped")
}

func (s *Scheduler) runSweep() {
	log.Println("Running auto-validation sweep...")

	report, err := s.autoValidationService.RunSweep(s.ctx)
	if err != nil {
		log.Printf("Auto-validation sweep error: %v", err)
		return
	}

	log.Printf("Auto-validation sweep done: found=%d resolved=%d skipped=%d errors=%d",
		report.Found, report.Resolved, report.Skipped, len(report.Errors))
}

// RunNow triggers the sweep outside the schedule (manual operations).
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering auto-validation sweep...")
	s.runSweep()
}
