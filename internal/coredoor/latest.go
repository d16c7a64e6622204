package coredoor

// LatestClassifications returns the classifications of the most
// recently completed classify run, or nil if the model is not
// ModelReady or no run has completed yet. This and FormatDoorStatus
// are the only sanctioned views over the model; presentation layers
// must not pattern-match on internal fields directly.
func LatestClassifications(model Model) []Classification {
	ready, ok := model.(ModelReady)
	if !ok {
		return nil
	}
	return latestClassifications(ready)
}

func latestClassifications(m ModelReady) []Classification {
	runs := m.Camera.Runs
	if len(runs) == 0 {
		return nil
	}
	return runs[len(runs)-1].Classifications
}
