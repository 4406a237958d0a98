package broker

// Broadcaster - fans message out to registry members.
type Broadcaster struct {
	registry *Registry
}

// NewBroadcaster - builds broadcaster over registry.
func NewBroadcaster(r *Registry) *Broadcaster {
	return &Broadcaster{registry: r}
}

// Send - enqueues message for every member except exclude (may be nil).
// Delivery is best effort, returned counters are diagnostic only:
// delivered is number of accepted enqueues, dropped is number of members
// who could not take the message.
func (b *Broadcaster) Send(message string, exclude *Member) (delivered, dropped int) {
	if b == nil || b.registry == nil || message == "" {
		return 0, 0
	}
	b.registry.Each(func(m *Member) {
		if m == exclude {
			return
		}
		if m.Enqueue(message) {
			delivered++
		} else {
			dropped++
		}
	})
	return delivered, dropped
}
