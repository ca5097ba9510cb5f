package authcore

import (
	"io"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Janitor periodically sweeps expired sessions out of the store. Without
// one, expired sessions linger until explicit logout or refresh and the
// store grows without bound under sustained login traffic.
type Janitor struct {
	cron *cron.Cron
}

// StartJanitor schedules SweepExpired on the service's configured
// SweepSchedule (cron syntax, "@every 1m" by default) and starts it.
// Stop the returned Janitor during shutdown. logger may be nil.
func (s *Service) StartJanitor(logger *logrus.Logger) (*Janitor, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	c := cron.New()
	_, err := c.AddFunc(s.cfg.SweepSchedule, func() {
		removed := s.SweepExpired()
		if removed > 0 {
			logger.WithFields(logrus.Fields{
				"removed":   removed,
				"remaining": s.ActiveSessions(),
			}).Info("swept expired sessions")
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return &Janitor{cron: c}, nil
}

// Stop halts the sweep schedule. A sweep already in flight completes.
func (j *Janitor) Stop() {
	if j == nil || j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
}
