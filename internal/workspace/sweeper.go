package workspace

import (
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper 定时回收空闲工作区
type Sweeper struct {
	scheduler *gocron.Scheduler
}

func NewSweeper(registry *Registry, interval time.Duration) (*Sweeper, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if _, err := s.Every(interval).Do(func() {
		registry.Sweep()
	}); err != nil {
		return nil, err
	}
	return &Sweeper{scheduler: s}, nil
}

func (s *Sweeper) Start() {
	s.scheduler.StartAsync()
}

func (s *Sweeper) Stop() {
	s.scheduler.Stop()
}
