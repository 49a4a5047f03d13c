package publish

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
)

// Schedule runs job right away and then every interval until ctx is done.
// A run that is still in progress when the next one is due delays it.
func Schedule(ctx context.Context, every time.Duration, job func(context.Context) error) error {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	_, err := s.Every(every).Do(func() {
		log.WithField("interval", every).Debug("running scheduled job")
		if err := job(ctx); err != nil {
			log.WithError(err).Error("scheduled job failed")
		}
	})
	if err != nil {
		return err
	}

	s.StartAsync()
	<-ctx.Done()
	s.Stop()
	return nil
}
