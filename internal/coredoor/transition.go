package coredoor

// Transition is the core's only other entry point besides Init. It is
// total: every (model, msg) pair produces a next model and a (possibly
// empty) effect list, never an error and never a panic. Messages that
// don't apply to the current variant or sub-state are absorbed by
// returning the model unchanged — late completions from a prior state
// must never crash the core.
func Transition(model Model, msg Msg) (Model, []Effect) {
	switch m := model.(type) {
	case ModelConnecting:
		return transitionConnecting(m, msg)
	case ModelReady:
		return transitionReady(m, msg)
	default:
		return model, nil
	}
}
