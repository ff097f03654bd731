package object

// contact records a collision that began during a physics step, seen from
// self's side.
type contact struct {
	self  *Object
	other *Object
}

// contactQueue is a FIFO filled while the space is locked and drained once
// the step has finished.
type contactQueue struct {
	items []contact
}

func (q *contactQueue) push(c contact) {
	if q == nil {
		return
	}
	q.items = append(q.items, c)
}

func (q *contactQueue) drain() []contact {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
