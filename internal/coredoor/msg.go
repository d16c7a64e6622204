package coredoor

import (
	"time"

	"github.com/google/uuid"
	"github.com/sua-org/smart-door/internal/image"
)

// Msg is the tagged union of everything that can be delivered to
// transition. isMsg is unexported so only this package can add
// variants; every variant embeds MsgMeta.
type Msg interface {
	isMsg()
	Meta() MsgMeta
}

// MsgMeta is common to every Msg: when the producer observed the
// event, and a correlation id a log line or trace can key on. ID is
// never read by transition's decision logic; HappenedAt is, since the
// debounce/cadence rules compare it directly.
type MsgMeta struct {
	HappenedAt time.Time
	ID         uuid.UUID
}

func (m MsgMeta) Meta() MsgMeta { return m }

// CameraConnEvent is the payload carried by a CameraEvent message.
type CameraConnEvent int

const (
	CameraConnected CameraConnEvent = iota
	CameraDisconnected
)

// DoorConnEvent is the payload carried by a DoorEvent message.
type DoorConnEvent int

const (
	DoorConnConnected DoorConnEvent = iota
	DoorConnDisconnected
	DoorConnOpened
	DoorConnClosed
)

// Tick is produced by the ticker at config.TickRate.
type Tick struct {
	MsgMeta
}

func (Tick) isMsg() {}

// CameraEvent is produced by the camera collaborator's subscription.
type CameraEvent struct {
	MsgMeta
	Event CameraConnEvent
}

func (CameraEvent) isMsg() {}

// DoorEvent is produced by the door collaborator's subscription.
type DoorEvent struct {
	MsgMeta
	Event DoorConnEvent
}

func (DoorEvent) isMsg() {}

// ImageCaptureDone is produced by the interpreter after running a
// CaptureImage effect. Images may be empty.
type ImageCaptureDone struct {
	MsgMeta
	Images []image.Image
}

func (ImageCaptureDone) isMsg() {}

// ImageClassifyDone is produced by the interpreter after running a
// ClassifyImages effect.
type ImageClassifyDone struct {
	MsgMeta
	Run ClassificationRun
}

func (ImageClassifyDone) isMsg() {}

// DoorOpenDone is produced by the interpreter after running an
// OpenDoor effect.
type DoorOpenDone struct {
	MsgMeta
}

func (DoorOpenDone) isMsg() {}

// DoorCloseDone is produced by the interpreter after running a
// CloseDoor effect.
type DoorCloseDone struct {
	MsgMeta
}

func (DoorCloseDone) isMsg() {}

// NewMeta stamps a fresh correlation id for a message about to be
// produced outside the pure core (ticker, interpreter). transition
// itself never calls this — it only ever copies HappenedAt forward
// from the triggering message onto the model's state_start_time.
func NewMeta(happenedAt time.Time) MsgMeta {
	return MsgMeta{HappenedAt: happenedAt, ID: uuid.New()}
}
