package coredoor

import "github.com/sua-org/smart-door/internal/image"

// Effect is an inert description of a side effect transition wants
// performed. Effects are values, not callbacks: the interpreter is
// free to execute them however it likes (goroutine-per-effect, a
// worker pool, a "record mode" for deterministic test replay) without
// transition ever knowing the difference.
type Effect interface {
	isEffect()
}

// SubscribeCamera is issued once, from init, to register for camera
// connection/disconnection events.
type SubscribeCamera struct{}

func (SubscribeCamera) isEffect() {}

// SubscribeDoor is issued once, from init, to register for door
// connection/disconnection/terminal-state events.
type SubscribeDoor struct{}

func (SubscribeDoor) isEffect() {}

// SubscribeTick is issued once, from init, to start the ticker.
type SubscribeTick struct{}

func (SubscribeTick) isEffect() {}

// CaptureImage asks the interpreter to pull the camera's current
// frame(s).
type CaptureImage struct{}

func (CaptureImage) isEffect() {}

// ClassifyImages asks the interpreter to run the classifier over a
// captured batch.
type ClassifyImages struct {
	Images []image.Image
}

func (ClassifyImages) isEffect() {}

// OpenDoor asks the interpreter to drive the door actuator open.
type OpenDoor struct{}

func (OpenDoor) isEffect() {}

// CloseDoor asks the interpreter to drive the door actuator closed.
type CloseDoor struct{}

func (CloseDoor) isEffect() {}
