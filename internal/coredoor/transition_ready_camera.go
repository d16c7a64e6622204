package coredoor

// transitionReadyCamera is the camera sub-machine. It never touches
// m.Door and is driven by Tick, ImageCaptureDone, and
// ImageClassifyDone; every other message leaves it unchanged.
func transitionReadyCamera(m ModelReady, msg Msg) (ModelCamera, []Effect) {
	cam := m.Camera

	switch e := msg.(type) {
	case Tick:
		if cam.State != CameraIdle {
			return cam, nil
		}
		now := e.HappenedAt
		if now.Sub(cam.StateStartTime) > m.Config.MinimalRateCameraProcess {
			cam.State = CameraCapturing
			cam.StateStartTime = now
			return cam, []Effect{CaptureImage{}}
		}
		return cam, nil

	case ImageCaptureDone:
		if cam.State != CameraCapturing {
			return cam, nil
		}
		if len(e.Images) == 0 {
			cam.State = CameraIdle
			cam.StateStartTime = e.HappenedAt
			return cam, nil
		}
		cam.State = CameraClassifying
		return cam, []Effect{ClassifyImages{Images: e.Images}}

	case ImageClassifyDone:
		if cam.State != CameraClassifying {
			return cam, nil
		}
		cam = cam.pushRun(e.Run)
		cam.State = CameraIdle
		cam.StateStartTime = e.HappenedAt
		return cam, nil

	default:
		return cam, nil
	}
}
