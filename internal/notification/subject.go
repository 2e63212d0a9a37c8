package notification

import "context"

// Observer receives domain events.
type Observer interface {
	Handle(ctx context.Context, event Event) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, event Event) error

func (f ObserverFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Subject broadcasts events to its observers synchronously, in attachment
// order. The first observer error stops the broadcast and is returned;
// observers after it do not see the event.
//
// Attach is meant for startup wiring and must not race with Notify.
type Subject struct {
	observers []Observer
}

func NewSubject(observers ...Observer) *Subject {
	return &Subject{observers: append([]Observer(nil), observers...)}
}

func (s *Subject) Attach(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Subject) Len() int {
	return len(s.observers)
}

func (s *Subject) Notify(ctx context.Context, event Event) error {
	for _, o := range s.observers {
		if err := o.Handle(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
