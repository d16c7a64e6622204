package camera

import (
	"context"
	"sync"

	"github.com/sua-org/smart-door/internal/image"
)

func init() {
	RegisterDriver("fake", "any", newFakeDriver)
}

// fakeDriver is a simulated camera used by the bootstrap binary in
// the absence of real hardware and by tests further up the stack. It
// reports Connected as soon as Start is called and returns a single
// blank frame on every Capture while started (nothing once stopped),
// the way a development fixture stands in for an RTSP/USB driver.
type fakeDriver struct {
	mu        sync.Mutex
	connected bool
	events    chan ConnEvent
}

func newFakeDriver(info Info) (Device, error) {
	return &fakeDriver{events: make(chan ConnEvent, 4)}, nil
}

func (d *fakeDriver) Start(ctx context.Context) error {
	d.mu.Lock()
	d.connected = true
	d.mu.Unlock()
	d.events <- Connected
	return nil
}

func (d *fakeDriver) Stop() error {
	d.mu.Lock()
	d.connected = false
	d.mu.Unlock()
	d.events <- Disconnected
	return nil
}

func (d *fakeDriver) Capture() []image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil
	}
	return []image.Image{{Width: 640, Height: 480, Channels: 3, Bytes: make([]byte, 640*480*3)}}
}

func (d *fakeDriver) Events() <-chan ConnEvent {
	return d.events
}

func (d *fakeDriver) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}
