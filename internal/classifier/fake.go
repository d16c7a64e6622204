package classifier

import (
	"context"

	"github.com/sua-org/smart-door/internal/coredoor"
	"github.com/sua-org/smart-door/internal/image"
)

// Fake is a development/test stand-in for a real model: it reports no
// detections for any input, the way a classifier with nothing loaded
// would behave. Tests that need specific detections construct
// coredoor.ClassificationRun values directly rather than going
// through a collaborator.
type Fake struct{}

// NewFake constructs a Fake classifier.
func NewFake() *Fake { return &Fake{} }

func (*Fake) Name() string { return "fake" }

func (*Fake) Classify(ctx context.Context, images []image.Image) ([]coredoor.Classification, error) {
	return nil, nil
}
