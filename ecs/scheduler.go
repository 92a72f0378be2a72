package ecs

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// PauseAware systems that return true keep running while the scheduler is
// paused, e.g. to keep pointer ownership consistent under an overlay.
type PauseAware interface {
	RunsWhilePaused() bool
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
	paused  bool
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		if s.paused && !runsWhilePaused(system) {
			continue
		}
		system.Update(w)
	}
}

func (s *Scheduler) SetPaused(paused bool) {
	s.paused = paused
}

func (s *Scheduler) Paused() bool {
	return s.paused
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

func runsWhilePaused(system System) bool {
	p, ok := system.(PauseAware)
	return ok && p.RunsWhilePaused()
}
