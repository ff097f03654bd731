package scene

// System is per-frame work that is not an object script, such as input
// handling. Systems run in insertion order before the object collections.
type System interface {
	Update(s *Scene) error
}

type SystemFunc func(s *Scene) error

func (f SystemFunc) Update(s *Scene) error { return f(s) }

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(scene *Scene) error {
	for _, system := range s.systems {
		if err := system.Update(scene); err != nil {
			return err
		}
	}
	return nil
}
