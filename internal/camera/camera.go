// Package camera defines the camera collaborator interface the core
// consumes only through coredoor's Msg/Effect algebra, plus a driver
// registry so a concrete manufacturer/model implementation can be
// selected at bootstrap without the rest of the program knowing which
// one it got.
package camera

import (
	"context"

	"github.com/sua-org/smart-door/internal/image"
)

// ConnEvent is what a Device publishes on its Events channel.
type ConnEvent int

const (
	Connected ConnEvent = iota
	Disconnected
)

// Device is the camera collaborator interface. Capture must not
// block waiting for a fresh frame — it returns whatever is cached,
// empty if nothing is available yet, so the core's capture cadence
// never stalls on it.
type Device interface {
	Start(ctx context.Context) error
	Stop() error
	Capture() []image.Image
	Events() <-chan ConnEvent
	IsConnected() bool
}

// Info identifies which driver a camera configuration should resolve
// to, generalizing the teacher's manufacturer/model camera registry
// key to this domain's driver set (a USB webcam, a simulated/fake
// camera for development, an RTSP source).
type Info struct {
	Manufacturer string
	Model        string
	Address      string
}

// Factory constructs a Device for a given Info.
type Factory func(info Info) (Device, error)

var registry = map[string]Factory{}

// RegisterDriver is called from a driver package's init() to make
// itself selectable by manufacturer/model.
func RegisterDriver(manufacturer, model string, f Factory) {
	registry[normalize(manufacturer)+":"+normalize(model)] = f
}

// GetDriver resolves the registered factory for info, falling back to
// a manufacturer-wide "any" entry before failing.
func GetDriver(info Info) (Device, error) {
	if f, ok := registry[keyFor(info)]; ok {
		return f(info)
	}
	if f, ok := registry[normalize(info.Manufacturer)+":any"]; ok {
		return f(info)
	}
	return nil, ErrDriverNotFound
}

func keyFor(info Info) string {
	return normalize(info.Manufacturer) + ":" + normalize(info.Model)
}

func normalize(s string) string {
	b := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ' ' || r == '-' || r == '_' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 32
		}
		b = append(b, r)
	}
	return string(b)
}
