package coredoor

import "strings"

// transitionReadyDoor is the door sub-machine. Classifications feed
// the open/close predicates as data, but the hysteresis table itself
// only advances on Tick: a completed classify run takes effect on the
// next tick, not the instant it lands. This matches the end-to-end
// scenarios, which show WillOpen starting on the first Tick after a
// matching classification rather than on the ImageClassifyDone
// message itself. DoorEvent is reconciled separately, unconditionally
// of Tick.
func transitionReadyDoor(m ModelReady, msg Msg) (ModelDoor, []Effect) {
	door := m.Door

	if e, ok := msg.(DoorEvent); ok {
		return transitionReadyDoorFromDoorEvent(door, e)
	}

	tick, isTick := msg.(Tick)
	if !isTick {
		return door, nil
	}

	now := tick.HappenedAt
	latest := latestClassifications(m)
	shouldOpen := matchesAny(latest, m.Config.ClassificationOpenList)
	shouldClose := matchesAny(latest, m.Config.ClassificationCloseList)

	switch door.State {
	case DoorClosed:
		if shouldOpen && !shouldClose {
			door.State = DoorWillOpen
			door.StateStartTime = now
			return door, nil
		}

	case DoorWillOpen:
		if shouldClose {
			door.State = DoorClosed
			door.StateStartTime = now
			return door, nil
		}
		if now.Sub(door.StateStartTime) >= m.Config.MinimalDurationWillOpen {
			door.State = DoorOpened
			door.StateStartTime = now
			return door, []Effect{OpenDoor{}}
		}

	case DoorOpened:
		if shouldClose || len(latest) == 0 {
			door.State = DoorWillClose
			door.StateStartTime = now
			return door, nil
		}

	case DoorWillClose:
		if shouldOpen && !shouldClose {
			door.State = DoorOpened
			door.StateStartTime = now
			return door, nil
		}
		if now.Sub(door.StateStartTime) >= m.Config.MinimalDurationWillClose {
			door.State = DoorClosed
			door.StateStartTime = now
			return door, []Effect{CloseDoor{}}
		}
	}

	return door, nil
}

// transitionReadyDoorFromDoorEvent reconciles the model's door state
// with a physical DoorEvent. Per the adopted policy, Opened/Closed
// events are authoritative for the terminal states but never cancel
// an in-progress WillOpen/WillClose debounce window. Connected leaves
// the door state unchanged; Disconnected is handled one level up in
// transitionReady and never reaches here.
func transitionReadyDoorFromDoorEvent(door ModelDoor, e DoorEvent) (ModelDoor, []Effect) {
	switch e.Event {
	case DoorConnOpened:
		if door.State == DoorWillOpen || door.State == DoorWillClose {
			return door, nil
		}
		door.State = DoorOpened
		door.StateStartTime = e.HappenedAt
	case DoorConnClosed:
		if door.State == DoorWillOpen || door.State == DoorWillClose {
			return door, nil
		}
		door.State = DoorClosed
		door.StateStartTime = e.HappenedAt
	}
	return door, nil
}

// matchesAny reports whether any classification matches any rule:
// same label (case-insensitive, trimmed) and weight at or above the
// rule's minimum.
func matchesAny(classifications []Classification, rules []ClassificationRule) bool {
	for _, c := range classifications {
		for _, r := range rules {
			if strings.EqualFold(strings.TrimSpace(c.Label), strings.TrimSpace(r.Label)) && c.Weight >= r.MinWeight {
				return true
			}
		}
	}
	return false
}
