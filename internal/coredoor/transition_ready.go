package coredoor

// transitionReady handles messages while the model is ModelReady. A
// CameraEvent(Disconnected) or DoorEvent(Disconnected) regresses the
// whole model back to ModelConnecting for the affected subsystem,
// taking precedence over everything else. DoorEvent(Connected) and
// CameraEvent(Connected) are no-ops here: the subscription is already
// up. Every other message is handed to the camera sub-machine and
// then the door sub-machine in turn, since a single Tick can advance
// both independently.
func transitionReady(m ModelReady, msg Msg) (Model, []Effect) {
	switch e := msg.(type) {
	case CameraEvent:
		if e.Event == CameraDisconnected {
			return ModelConnecting{Camera: Connecting, Door: Connected, Config: m.Config}, nil
		}
		return m, nil
	case DoorEvent:
		if e.Event == DoorConnDisconnected {
			return ModelConnecting{Camera: Connected, Door: Connecting, Config: m.Config}, nil
		}
	}

	var effects []Effect

	cam, camEffects := transitionReadyCamera(m, msg)
	m.Camera = cam
	effects = append(effects, camEffects...)

	door, doorEffects := transitionReadyDoor(m, msg)
	m.Door = door
	effects = append(effects, doorEffects...)

	return m, effects
}
