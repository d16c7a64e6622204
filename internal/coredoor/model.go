package coredoor

import (
	"time"

	"github.com/sua-org/smart-door/internal/image"
)

// ConnState is the connection lifecycle of a single collaborator
// subscription (camera or door), tracked independently for each.
type ConnState int

const (
	Connecting ConnState = iota
	Connected
)

func (s ConnState) String() string {
	if s == Connected {
		return "Connected"
	}
	return "Connecting"
}

// CameraState is the camera sub-machine's state while the model is
// ModelReady.
type CameraState int

const (
	CameraIdle CameraState = iota
	CameraCapturing
	CameraClassifying
)

// DoorState is the door sub-machine's state while the model is
// ModelReady.
type DoorState int

const (
	DoorClosed DoorState = iota
	DoorWillOpen
	DoorOpened
	DoorWillClose
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "Closed"
	case DoorWillOpen:
		return "WillOpen"
	case DoorOpened:
		return "Opened"
	case DoorWillClose:
		return "WillClose"
	default:
		return "Unknown"
	}
}

// Model is the tagged union at the heart of the core: the supervisor
// holds exactly one Model value at a time, replacing it wholesale on
// every transition call. isModel is unexported so only this package
// can add variants.
type Model interface {
	isModel()
}

// ModelConnecting is the initial state, and the state the system
// regresses to whenever either subscription disconnects.
type ModelConnecting struct {
	Camera ConnState
	Door   ConnState
	Config Config
}

func (ModelConnecting) isModel() {}

// ModelReady is entered once both the camera and the door
// subscriptions report Connected.
type ModelReady struct {
	Camera ModelCamera
	Door   ModelDoor
	Config Config
}

func (ModelReady) isModel() {}

// classificationRunRingSize bounds classification_runs retention per
// the ring-buffer policy: the door policy only ever needs the latest
// run, but a short history is useful for diagnostics.
const classificationRunRingSize = 8

// ModelCamera is the camera sub-machine's state.
type ModelCamera struct {
	State          CameraState
	StateStartTime time.Time

	// Runs holds up to classificationRunRingSize most recent
	// ClassificationRun values, oldest first. Use LatestClassifications
	// to read the one value the door policy is allowed to act on.
	Runs []ClassificationRun
}

// pushRun appends a run to the ring, evicting the oldest entry once
// the bound is reached. It returns a new ModelCamera; the receiver is
// never mutated in place, keeping transition pure.
func (c ModelCamera) pushRun(run ClassificationRun) ModelCamera {
	runs := make([]ClassificationRun, 0, classificationRunRingSize)
	start := 0
	if len(c.Runs)+1 > classificationRunRingSize {
		start = len(c.Runs) + 1 - classificationRunRingSize
	}
	runs = append(runs, c.Runs[start:]...)
	runs = append(runs, run)
	c.Runs = runs
	return c
}

// ClassificationRun is one completed classify effect: the
// classifications produced, the images they were produced from, and
// when the run finished.
type ClassificationRun struct {
	Classifications []Classification
	Images          []image.Image
	FinishedAt      time.Time
}

// ModelDoor is the door sub-machine's state.
type ModelDoor struct {
	State          DoorState
	StateStartTime time.Time
}
