package coredoor

import (
	"reflect"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/sua-org/smart-door/internal/image"
)

func tickAt(t time.Time) Tick {
	return Tick{MsgMeta: NewMeta(t)}
}

func cameraEvent(t time.Time, e CameraConnEvent) CameraEvent {
	return CameraEvent{MsgMeta: NewMeta(t), Event: e}
}

func doorEvent(t time.Time, e DoorConnEvent) DoorEvent {
	return DoorEvent{MsgMeta: NewMeta(t), Event: e}
}

func imageStub() image.Image {
	return image.Image{Width: 1, Height: 1, Channels: 1, Bytes: []byte{0}}
}

func captureDone(t time.Time, n int) ImageCaptureDone {
	out := ImageCaptureDone{MsgMeta: NewMeta(t)}
	for i := 0; i < n; i++ {
		out.Images = append(out.Images, imageStub())
	}
	return out
}

func classifyDone(t time.Time, classifications ...Classification) ImageClassifyDone {
	return ImageClassifyDone{
		MsgMeta: NewMeta(t),
		Run: ClassificationRun{
			Classifications: classifications,
			FinishedAt:      t,
		},
	}
}

var epoch = time.Unix(0, 0).UTC()

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestPurity(t *testing.T) {
	Convey("transition is deterministic and side-effect-free", t, func() {
		model, _ := Init(DefaultConfig())
		msg := cameraEvent(at(0), CameraConnected)

		model1, effects1 := Transition(model, msg)
		model2, effects2 := Transition(model, msg)

		So(model1, ShouldResemble, model2)
		So(reflect.DeepEqual(effects1, effects2), ShouldBeTrue)
	})
}

func TestConnectingToReady(t *testing.T) {
	Convey("given the initial model", t, func() {
		model, effects := Init(DefaultConfig())

		Convey("it starts in ModelConnecting with the three subscribe effects", func() {
			So(model, ShouldResemble, ModelConnecting{Camera: Connecting, Door: Connecting, Config: DefaultConfig()})
			So(effects, ShouldResemble, []Effect{SubscribeCamera{}, SubscribeDoor{}, SubscribeTick{}})
		})

		Convey("camera-then-door connected reaches Ready", func() {
			model, _ = Transition(model, cameraEvent(at(0), CameraConnected))
			model, _ = Transition(model, doorEvent(at(0), DoorConnConnected))

			ready, ok := model.(ModelReady)
			So(ok, ShouldBeTrue)
			So(ready.Camera.State, ShouldEqual, CameraIdle)
			So(ready.Door.State, ShouldEqual, DoorClosed)
		})

		Convey("door-then-camera connected also reaches Ready", func() {
			model, _ = Transition(model, doorEvent(at(0), DoorConnConnected))
			model, _ = Transition(model, cameraEvent(at(0), CameraConnected))

			_, ok := model.(ModelReady)
			So(ok, ShouldBeTrue)
		})

		Convey("a disconnect before both connect keeps Connecting", func() {
			model, _ = Transition(model, cameraEvent(at(0), CameraConnected))
			model, _ = Transition(model, cameraEvent(at(1), CameraDisconnected))
			model, _ = Transition(model, doorEvent(at(1), DoorConnConnected))

			_, ok := model.(ModelConnecting)
			So(ok, ShouldBeTrue)
		})
	})
}

// readyModel parks the camera state start far in the future so tests
// focused on the door sub-machine don't incidentally trigger a
// capture cadence; TestCaptureCadence overrides it explicitly.
func readyModel(cfg Config) ModelReady {
	return ModelReady{
		Camera: ModelCamera{State: CameraIdle, StateStartTime: at(100_000_000)},
		Door:   ModelDoor{State: DoorClosed, StateStartTime: at(0)},
		Config: cfg,
	}
}

func TestRegression(t *testing.T) {
	Convey("given a Ready model", t, func() {
		m := readyModel(DefaultConfig())

		Convey("camera disconnect regresses with door still connected", func() {
			next, _ := Transition(m, cameraEvent(at(10), CameraDisconnected))
			So(next, ShouldResemble, ModelConnecting{Camera: Connecting, Door: Connected, Config: m.Config})
		})

		Convey("door disconnect regresses with camera still connected", func() {
			next, _ := Transition(m, doorEvent(at(10), DoorConnDisconnected))
			So(next, ShouldResemble, ModelConnecting{Camera: Connected, Door: Connecting, Config: m.Config})
		})
	})
}

func TestCaptureCadence(t *testing.T) {
	Convey("given an Idle camera at t0", t, func() {
		cfg := DefaultConfig()
		m := readyModel(cfg)
		m.Camera.StateStartTime = at(0)

		Convey("a tick past the minimal rate starts a capture", func() {
			next, effects := transitionReady(m, tickAt(at(201)))
			ready := next.(ModelReady)
			So(ready.Camera.State, ShouldEqual, CameraCapturing)
			So(effects, ShouldResemble, []Effect{CaptureImage{}})
		})

		Convey("a tick within the minimal rate changes nothing", func() {
			next, effects := transitionReady(m, tickAt(at(100)))
			ready := next.(ModelReady)
			So(ready.Camera.State, ShouldEqual, CameraIdle)
			So(effects, ShouldBeEmpty)
		})
	})
}

func TestCaptureToClassify(t *testing.T) {
	Convey("given a Capturing camera", t, func() {
		cfg := DefaultConfig()
		m := readyModel(cfg)
		m.Camera.State = CameraCapturing

		Convey("non-empty images advance to Classifying with one ClassifyImages effect", func() {
			msg := captureDone(at(5), 1)
			next, effects := transitionReady(m, msg)
			ready := next.(ModelReady)
			So(ready.Camera.State, ShouldEqual, CameraClassifying)
			So(len(effects), ShouldEqual, 1)
			_, ok := effects[0].(ClassifyImages)
			So(ok, ShouldBeTrue)
		})

		Convey("empty images return to Idle with no effect, resetting state_start_time to now", func() {
			msg := captureDone(at(5), 0)
			next, effects := transitionReady(m, msg)
			ready := next.(ModelReady)
			So(ready.Camera.State, ShouldEqual, CameraIdle)
			So(ready.Camera.StateStartTime, ShouldResemble, at(5))
			So(effects, ShouldBeEmpty)
		})
	})
}

func TestClassifyDoneResetsCameraStateStartTime(t *testing.T) {
	Convey("given a Classifying camera", t, func() {
		cfg := DefaultConfig()
		m := readyModel(cfg)
		m.Camera.State = CameraClassifying
		m.Camera.StateStartTime = at(0)

		Convey("ImageClassifyDone returns to Idle and resets state_start_time to now, not to when capture started", func() {
			msg := classifyDone(at(600), Classification{Label: "dog", Weight: 0.9})
			next, effects := transitionReady(m, msg)
			ready := next.(ModelReady)
			So(ready.Camera.State, ShouldEqual, CameraIdle)
			So(ready.Camera.StateStartTime, ShouldResemble, at(600))
			So(effects, ShouldBeEmpty)

			Convey("a tick before the cadence window has elapsed since Idle re-entry does not recapture", func() {
				next2, effects2 := transitionReady(ready, tickAt(at(650)))
				ready2 := next2.(ModelReady)
				So(ready2.Camera.State, ShouldEqual, CameraIdle)
				So(effects2, ShouldBeEmpty)
			})

			Convey("a tick after the cadence window has elapsed since Idle re-entry recaptures", func() {
				next2, effects2 := transitionReady(ready, tickAt(at(801)))
				ready2 := next2.(ModelReady)
				So(ready2.Camera.State, ShouldEqual, CameraCapturing)
				So(effects2, ShouldResemble, []Effect{CaptureImage{}})
			})
		})
	})
}

func TestDebounceOpen(t *testing.T) {
	Convey("given Closed with a dog classification", t, func() {
		cfg := DefaultConfig()
		m := readyModel(cfg)
		m.Camera.Runs = []ClassificationRun{{
			Classifications: []Classification{{Label: "dog", Weight: 0.9}},
			FinishedAt:      at(0),
		}}

		next, effects := transitionReady(m, tickAt(at(0)))
		ready := next.(ModelReady)
		So(ready.Door.State, ShouldEqual, DoorWillOpen)
		So(ready.Door.StateStartTime, ShouldResemble, at(0))
		So(effects, ShouldBeEmpty)

		Convey("ticks before the debounce window keep WillOpen", func() {
			next2, effects2 := transitionReady(ready, tickAt(at(2999)))
			ready2 := next2.(ModelReady)
			So(ready2.Door.State, ShouldEqual, DoorWillOpen)
			So(effects2, ShouldBeEmpty)
		})

		Convey("the tick at the window boundary opens the door", func() {
			next2, effects2 := transitionReady(ready, tickAt(at(3000)))
			ready2 := next2.(ModelReady)
			So(ready2.Door.State, ShouldEqual, DoorOpened)
			So(effects2, ShouldResemble, []Effect{OpenDoor{}})
		})
	})
}

func TestDebounceClose(t *testing.T) {
	Convey("given Opened with empty latest classifications", t, func() {
		cfg := DefaultConfig()
		m := readyModel(cfg)
		m.Door.State = DoorOpened
		m.Door.StateStartTime = at(0)

		next, effects := transitionReady(m, tickAt(at(100)))
		ready := next.(ModelReady)
		So(ready.Door.State, ShouldEqual, DoorWillClose)
		So(effects, ShouldBeEmpty)

		Convey("the tick at the window boundary closes the door", func() {
			next2, effects2 := transitionReady(ready, tickAt(at(3100)))
			ready2 := next2.(ModelReady)
			So(ready2.Door.State, ShouldEqual, DoorClosed)
			So(effects2, ShouldResemble, []Effect{CloseDoor{}})
		})
	})
}

func TestOverride(t *testing.T) {
	Convey("given WillOpen", t, func() {
		cfg := DefaultConfig()
		m := readyModel(cfg)
		m.Door.State = DoorWillOpen
		m.Door.StateStartTime = at(0)
		m.Camera.Runs = []ClassificationRun{{
			Classifications: []Classification{{Label: "cat", Weight: 0.9}},
			FinishedAt:      at(1000),
		}}

		Convey("should_close cancels straight to Closed with no OpenDoor", func() {
			next, effects := transitionReady(m, tickAt(at(1000)))
			ready := next.(ModelReady)
			So(ready.Door.State, ShouldEqual, DoorClosed)
			for _, e := range effects {
				_, isOpen := e.(OpenDoor)
				So(isOpen, ShouldBeFalse)
			}
		})
	})

	Convey("given WillClose", t, func() {
		cfg := DefaultConfig()
		m := readyModel(cfg)
		m.Door.State = DoorWillClose
		m.Door.StateStartTime = at(0)
		m.Camera.Runs = []ClassificationRun{{
			Classifications: []Classification{{Label: "dog", Weight: 0.9}},
			FinishedAt:      at(1000),
		}}

		Convey("should_open without should_close cancels straight to Opened with no CloseDoor", func() {
			next, effects := transitionReady(m, tickAt(at(1000)))
			ready := next.(ModelReady)
			So(ready.Door.State, ShouldEqual, DoorOpened)
			for _, e := range effects {
				_, isClose := e.(CloseDoor)
				So(isClose, ShouldBeFalse)
			}
		})
	})
}

func TestClosePrecedence(t *testing.T) {
	Convey("given Closed with both a dog and a cat classification", t, func() {
		cfg := DefaultConfig()
		m := readyModel(cfg)
		m.Camera.Runs = []ClassificationRun{{
			Classifications: []Classification{
				{Label: "dog", Weight: 0.9},
				{Label: "cat", Weight: 0.9},
			},
			FinishedAt: at(0),
		}}

		next, effects := transitionReady(m, tickAt(at(0)))
		ready := next.(ModelReady)
		So(ready.Door.State, ShouldNotEqual, DoorOpened)
		for _, e := range effects {
			_, isOpen := e.(OpenDoor)
			So(isOpen, ShouldBeFalse)
		}
	})
}

func TestIdempotentSubscribeEffects(t *testing.T) {
	Convey("init issues each subscribe effect exactly once", t, func() {
		_, effects := Init(DefaultConfig())
		So(len(effects), ShouldEqual, 3)

		seen := map[string]int{}
		for _, e := range effects {
			switch e.(type) {
			case SubscribeCamera:
				seen["camera"]++
			case SubscribeDoor:
				seen["door"]++
			case SubscribeTick:
				seen["tick"]++
			}
		}
		So(seen["camera"], ShouldEqual, 1)
		So(seen["door"], ShouldEqual, 1)
		So(seen["tick"], ShouldEqual, 1)
	})
}
