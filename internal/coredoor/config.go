package coredoor

import "time"

// Config is an immutable, process-wide policy bundle. It is constructed
// once at startup (see internal/config) and threaded through init and
// every transition call; transition never reads configuration from
// anywhere else.
type Config struct {
	TickRate time.Duration

	// MinimalRateCameraProcess bounds how often the camera sub-machine
	// is allowed to start a new capture cycle.
	MinimalRateCameraProcess time.Duration

	// MinimalDurationWillOpen and MinimalDurationWillClose are the two
	// debounce windows the door sub-machine must sit in before a
	// WillOpen/WillClose advances to a terminal state, unless preempted
	// by the override rule.
	MinimalDurationWillOpen  time.Duration
	MinimalDurationWillClose time.Duration

	ClassificationOpenList  []ClassificationRule
	ClassificationCloseList []ClassificationRule
}

// ClassificationRule is one entry of an open/close list: a label to
// match (case-insensitive, trimmed) and the minimum confidence weight
// required for a match to count.
type ClassificationRule struct {
	Label     string
	MinWeight float64
}

// Classification is one labeled detection produced by the classifier
// for a single captured image. It is immutable once produced.
type Classification struct {
	Label       string
	Weight      float64
	BoundingBox BoundingBox
}

// BoundingBox locates a Classification within the image it was
// produced from.
type BoundingBox struct {
	XMin, YMin, XMax, YMax float64
}

// DefaultConfig mirrors the original implementation's defaults: a
// dog opens the door, a cat closes it, both at a 0.5 confidence
// floor. internal/config overrides these from a TOML file; tests use
// them directly.
func DefaultConfig() Config {
	return Config{
		TickRate:                 500 * time.Millisecond,
		MinimalRateCameraProcess: 200 * time.Millisecond,
		MinimalDurationWillOpen:  3 * time.Second,
		MinimalDurationWillClose: 3 * time.Second,
		ClassificationOpenList: []ClassificationRule{
			{Label: "dog", MinWeight: 0.5},
		},
		ClassificationCloseList: []ClassificationRule{
			{Label: "cat", MinWeight: 0.5},
		},
	}
}
