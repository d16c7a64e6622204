package coredoor

// Init returns the starting model and the three subscription effects
// the supervisor must hand to the interpreter exactly once, at
// startup. No collaborator call has happened yet, so both connection
// states start Connecting.
func Init(cfg Config) (Model, []Effect) {
	model := ModelConnecting{
		Camera: Connecting,
		Door:   Connecting,
		Config: cfg,
	}
	effects := []Effect{
		SubscribeCamera{},
		SubscribeDoor{},
		SubscribeTick{},
	}
	return model, effects
}
