// Package interpreter adapts the pure core's effects into calls
// against the camera, door, and classifier collaborators, converting
// their results and events back into messages. Every effect runs on
// its own goroutine so a slow classify call or a blocking actuator
// write never stalls the supervisor loop that issued it.
package interpreter

import (
	"context"
	"log"
	"runtime/debug"
	"time"

	"github.com/sua-org/smart-door/internal/camera"
	"github.com/sua-org/smart-door/internal/classifier"
	"github.com/sua-org/smart-door/internal/coredoor"
	"github.com/sua-org/smart-door/internal/door"
	"github.com/sua-org/smart-door/internal/image"
	"github.com/sua-org/smart-door/internal/ticker"
)

// Collaborators bundles the three side-effecting dependencies the
// interpreter drives, avoiding three separate constructor parameters
// threaded through the supervisor individually.
type Collaborators struct {
	Camera     camera.Device
	Door       door.Device
	Classifier *classifier.Manager
}

// Interpreter executes effects against Collaborators and reports the
// resulting messages through the enqueue function handed to Execute.
type Interpreter struct {
	collaborators Collaborators
	config        coredoor.Config
	ticker        *ticker.Ticker
}

// New builds an Interpreter bound to collaborators and the process
// configuration (needed for the tick rate a SubscribeTick effect
// starts).
func New(collaborators Collaborators, cfg coredoor.Config) *Interpreter {
	return &Interpreter{collaborators: collaborators, config: cfg}
}

// Execute runs effect, calling enqueue with every message it produces.
// enqueue must be safe to call from arbitrary goroutines; the
// supervisor's mailbox satisfies that.
func (ip *Interpreter) Execute(ctx context.Context, effect coredoor.Effect, enqueue func(coredoor.Msg)) {
	switch e := effect.(type) {
	case coredoor.SubscribeCamera:
		go ip.subscribeCamera(ctx, enqueue)
	case coredoor.SubscribeDoor:
		go ip.subscribeDoor(ctx, enqueue)
	case coredoor.SubscribeTick:
		ip.ticker = &ticker.Ticker{Interval: ip.config.TickRate}
		ip.ticker.Start(ctx, func(now time.Time) {
			enqueue(coredoor.Tick{MsgMeta: coredoor.NewMeta(now)})
		})
	case coredoor.CaptureImage:
		go ip.captureImage(enqueue)
	case coredoor.ClassifyImages:
		go ip.classifyImages(ctx, e, enqueue)
	case coredoor.OpenDoor:
		go ip.openDoor(enqueue)
	case coredoor.CloseDoor:
		go ip.closeDoor(enqueue)
	default:
		log.Printf("[interpreter] unknown effect %T, ignoring", effect)
	}
}

// Stop halts the ticker, if one was started. Subscriptions and
// in-flight effect goroutines are left to the caller's context
// cancellation.
func (ip *Interpreter) Stop() {
	if ip.ticker != nil {
		ip.ticker.Stop()
	}
}

func (ip *Interpreter) subscribeCamera(ctx context.Context, enqueue func(coredoor.Msg)) {
	events := ip.collaborators.Camera.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			var mapped coredoor.CameraConnEvent
			switch ev {
			case camera.Connected:
				mapped = coredoor.CameraConnected
			case camera.Disconnected:
				mapped = coredoor.CameraDisconnected
			default:
				continue
			}
			enqueue(coredoor.CameraEvent{MsgMeta: coredoor.NewMeta(time.Now()), Event: mapped})
		}
	}
}

func (ip *Interpreter) subscribeDoor(ctx context.Context, enqueue func(coredoor.Msg)) {
	events := ip.collaborators.Door.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			var mapped coredoor.DoorConnEvent
			switch ev {
			case door.Connected:
				mapped = coredoor.DoorConnConnected
			case door.Disconnected:
				mapped = coredoor.DoorConnDisconnected
			case door.Opened:
				mapped = coredoor.DoorConnOpened
			case door.Closed:
				mapped = coredoor.DoorConnClosed
			default:
				continue
			}
			enqueue(coredoor.DoorEvent{MsgMeta: coredoor.NewMeta(time.Now()), Event: mapped})
		}
	}
}

// captureImage calls the camera collaborator directly: capture() is
// documented as non-blocking, so no per-call timeout is needed here,
// only the panic guard every collaborator call gets.
func (ip *Interpreter) captureImage(enqueue func(coredoor.Msg)) {
	images := safeCall(func() []image.Image {
		return ip.collaborators.Camera.Capture()
	}, "camera.capture")
	enqueue(coredoor.ImageCaptureDone{MsgMeta: coredoor.NewMeta(time.Now()), Images: images})
}

func (ip *Interpreter) classifyImages(ctx context.Context, effect coredoor.ClassifyImages, enqueue func(coredoor.Msg)) {
	now := time.Now()
	classifications := ip.collaborators.Classifier.Classify(ctx, effect.Images)
	enqueue(coredoor.ImageClassifyDone{
		MsgMeta: coredoor.NewMeta(now),
		Run: coredoor.ClassificationRun{
			Classifications: classifications,
			Images:          effect.Images,
			FinishedAt:      now,
		},
	})
}

func (ip *Interpreter) openDoor(enqueue func(coredoor.Msg)) {
	if err := safeCall(ip.collaborators.Door.Open, "door.open"); err != nil {
		log.Printf("[interpreter] door open failed: %v", err)
	}
	enqueue(coredoor.DoorOpenDone{MsgMeta: coredoor.NewMeta(time.Now())})
}

func (ip *Interpreter) closeDoor(enqueue func(coredoor.Msg)) {
	if err := safeCall(ip.collaborators.Door.Close, "door.close"); err != nil {
		log.Printf("[interpreter] door close failed: %v", err)
	}
	enqueue(coredoor.DoorCloseDone{MsgMeta: coredoor.NewMeta(time.Now())})
}

// safeCall recovers from a panicking collaborator call and returns
// the zero value instead, logging the stack the way the teacher's
// engine manager does for its own per-engine panics.
func safeCall[T any](f func() T, label string) (result T) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[interpreter] panic in %s: %v\n%s", label, r, string(debug.Stack()))
		}
	}()
	return f()
}
