package scheduler

import (
	"time"

	"github.com/quantfoundry/curverisk/internal/modules/risk"
	"github.com/rs/zerolog"
)

// RevalueService is the part of the risk service the job needs.
type RevalueService interface {
	Revalue() (*risk.Report, error)
}

// RevalueJob reprices the book and refreshes parameter sensitivities.
// Runs on the configured revaluation schedule.
type RevalueJob struct {
	log     zerolog.Logger
	service RevalueService
}

// NewRevalueJob creates a new revaluation job
func NewRevalueJob(log zerolog.Logger, service RevalueService) *RevalueJob {
	return &RevalueJob{
		log:     log.With().Str("job", "revalue").Logger(),
		service: service,
	}
}

// Name returns the job name
func (j *RevalueJob) Name() string {
	return "revalue"
}

// Run executes a full revaluation of the configured book
func (j *RevalueJob) Run() error {
	start := time.Now()

	if _, err := j.service.Revalue(); err != nil {
		return err
	}

	j.log.Info().
		Dur("duration", time.Since(start)).
		Msg("Revaluation completed")

	return nil
}
