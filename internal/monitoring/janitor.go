package monitoring

import (
	"fmt"
	"time"

	"github.com/isdelr/notes-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Janitor prunes old activity-log events on a cron schedule.
type Janitor struct {
	eventSvc  services.EventServiceProvider
	retention time.Duration
	cron      *cron.Cron
	now       func() time.Time
}

// NewJanitor creates a janitor that keeps events for retention and runs on
// spec, a standard cron expression or descriptor such as "@daily".
func NewJanitor(eventSvc services.EventServiceProvider, spec string, retention time.Duration) (*Janitor, error) {
	j := &Janitor{
		eventSvc:  eventSvc,
		retention: retention,
		cron:      cron.New(),
		now:       time.Now,
	}
	if _, err := j.cron.AddFunc(spec, j.pruneOnce); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", spec, err)
	}
	return j, nil
}

// Start runs the schedule in the background.
func (j *Janitor) Start() {
	log.Info().Msg("Starting event janitor...")
	j.cron.Start()
}

// Stop halts the schedule and waits for a running prune to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	log.Info().Msg("Stopped event janitor.")
}

// pruneOnce deletes every event older than the retention window.
func (j *Janitor) pruneOnce() {
	cutoff := j.now().Add(-j.retention)
	removed, err := j.eventSvc.PruneEventsBefore(cutoff)
	if err != nil {
		log.Error().Err(err).Time("cutoff", cutoff).Msg("Janitor: Failed to prune events")
		return
	}
	log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Janitor: Pruned old events")
}
