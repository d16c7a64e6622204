package door

import (
	"context"
	"sync"
)

func init() {
	RegisterDriver("fake", "any", newFakeDriver)
}

// fakeDriver simulates a relay-driven actuator: Open/Close always
// succeed and immediately report the corresponding terminal event, as
// if the physical door reached its end stop instantly.
type fakeDriver struct {
	mu     sync.Mutex
	events chan ConnEvent
}

func newFakeDriver(info Info) (Device, error) {
	return &fakeDriver{events: make(chan ConnEvent, 4)}, nil
}

func (d *fakeDriver) Start(ctx context.Context) error {
	d.events <- Connected
	return nil
}

func (d *fakeDriver) Stop() error {
	d.events <- Disconnected
	return nil
}

func (d *fakeDriver) Open() error {
	d.events <- Opened
	return nil
}

func (d *fakeDriver) Close() error {
	d.events <- Closed
	return nil
}

func (d *fakeDriver) Events() <-chan ConnEvent {
	return d.events
}
