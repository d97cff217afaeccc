package poh

import (
	"time"

	"tickchain/exception"
)

// Service drives a recorder on a wall-clock interval, flushing newly
// emitted ticks through the OnTicks callback.
type Service struct {
	Recorder     *Recorder
	TickInterval time.Duration
	OnTicks      func(ticks [][]byte)
	stopCh       chan struct{}
}

func NewService(recorder *Recorder, interval time.Duration) *Service {
	return &Service{
		Recorder:     recorder,
		TickInterval: interval,
		stopCh:       make(chan struct{}),
	}
}

func (s *Service) Start() {
	exception.SafeGoWithPanic("tickAndFlush", func() {
		s.tickAndFlush()
	})
}

func (s *Service) Stop() {
	close(s.stopCh)
}

func (s *Service) tickAndFlush() {
	ticker := time.NewTicker(s.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Recorder.TickOnly()
			if ticks := s.Recorder.DrainNew(); len(ticks) > 0 && s.OnTicks != nil {
				s.OnTicks(ticks)
			}
		case <-s.stopCh:
			return
		}
	}
}
