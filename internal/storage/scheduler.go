package storage

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"psgdle/internal/providers"
	"psgdle/internal/storage/interfaces"
	"psgdle/internal/structures"
)

// Scheduler flushes the store to disk on a fixed interval and once more
// at shutdown.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	store   StoreInterface
	metrics MetricsObserver
	cron    *gron.Cron
	opsMu   sync.Mutex
}

// MetricsObserver is the slice of the metrics provider the scheduler
// needs; declared here to keep storage free of the providers wiring.
type MetricsObserver interface {
	ObservePersistenceDuration(duration time.Duration)
}

func NewScheduler(config *structures.Config, logger providers.Logger, store StoreInterface, metrics MetricsObserver) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		store:   store,
		metrics: metrics,
	}
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.store.SaveToFile()
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted store to file %s", s.config.Persistence.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.store.LoadFromFile()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting store to file...")
	start := time.Now()
	err := s.store.SaveToFile()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}
