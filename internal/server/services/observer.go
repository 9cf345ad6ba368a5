package services

import "time"

// Observer receives the outcome of every store operation.
type Observer interface {
	Observe(op string, err error, since time.Time)
}

type nopObserver struct{}

func (nopObserver) Observe(string, error, time.Time) {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
