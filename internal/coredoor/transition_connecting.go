package coredoor

// transitionConnecting handles messages while the model is
// ModelConnecting. Only CameraEvent and DoorEvent matter here; every
// other message is a no-op until both subscriptions are up.
func transitionConnecting(m ModelConnecting, msg Msg) (Model, []Effect) {
	switch e := msg.(type) {
	case CameraEvent:
		switch e.Event {
		case CameraConnected:
			m.Camera = Connected
		case CameraDisconnected:
			m.Camera = Connecting
		}
	case DoorEvent:
		switch e.Event {
		case DoorConnConnected:
			m.Door = Connected
		case DoorConnDisconnected:
			m.Door = Connecting
		}
	default:
		return m, nil
	}

	if m.Camera == Connected && m.Door == Connected {
		now := msg.Meta().HappenedAt
		ready := ModelReady{
			Camera: ModelCamera{State: CameraIdle, StateStartTime: now},
			Door:   ModelDoor{State: DoorClosed, StateStartTime: now},
			Config: m.Config,
		}
		return ready, nil
	}
	return m, nil
}
