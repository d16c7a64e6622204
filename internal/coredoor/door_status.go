package coredoor

import (
	"fmt"
	"math"
	"time"
)

// DoorStatus is a pure presentation helper: given a model and the
// current time, it renders the bare human-readable status string.
// FormatDoorStatus adds the presentation prefix on top of it.
func DoorStatus(model Model, now time.Time) string {
	switch m := model.(type) {
	case ModelConnecting:
		return doorStatusConnecting(m)
	case ModelReady:
		return doorStatusReady(m, now)
	default:
		return "Unknown"
	}
}

// FormatDoorStatus wraps DoorStatus with the prefix presentation
// layers expect, mirroring the original's to_door_status/
// _to_door_status split.
func FormatDoorStatus(model Model, now time.Time) string {
	return fmt.Sprintf("Door Status: %s", DoorStatus(model, now))
}

func doorStatusConnecting(m ModelConnecting) string {
	if m.Door == Connected {
		return "Connected"
	}
	return "Connecting"
}

func doorStatusReady(m ModelReady, now time.Time) string {
	switch m.Door.State {
	case DoorOpened:
		return "Opened"
	case DoorClosed:
		return "Closed"
	case DoorWillOpen:
		return fmt.Sprintf("Will open in %d seconds", secondsRemaining(m.Door.StateStartTime, m.Config.MinimalDurationWillOpen, now))
	case DoorWillClose:
		return fmt.Sprintf("Will close in %d seconds", secondsRemaining(m.Door.StateStartTime, m.Config.MinimalDurationWillClose, now))
	default:
		return "Unknown"
	}
}

func secondsRemaining(stateStart time.Time, minimalDuration time.Duration, now time.Time) int64 {
	remaining := stateStart.Add(minimalDuration).Sub(now).Seconds()
	return int64(math.Ceil(remaining))
}
