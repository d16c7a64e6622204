// Package classifier defines the image-classification collaborator
// interface and a Manager that runs a chosen classifier under a
// per-call timeout with panic recovery, so a misbehaving model never
// stalls or crashes the supervisor loop that calls it indirectly
// through the effect interpreter.
package classifier

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/sua-org/smart-door/internal/coredoor"
	"github.com/sua-org/smart-door/internal/image"
)

// Classifier is deterministic for a given input batch and loaded
// model; typical latency is 10-500ms, per the collaborator contract.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, images []image.Image) ([]coredoor.Classification, error)
}

// Manager wraps a single Classifier with a timeout, converting panics
// and errors into an empty result rather than letting them propagate,
// matching the interpreter's "neutral completion message" failure
// policy for collaborator calls.
type Manager struct {
	classifier Classifier
	timeout    time.Duration
}

// NewManager builds a Manager around classifier. A non-positive
// timeout falls back to 10 seconds.
func NewManager(c Classifier, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Manager{classifier: c, timeout: timeout}
}

// Classify runs the wrapped classifier under Manager's timeout,
// recovering from any panic and logging failures instead of
// returning them, so callers always get a usable (possibly empty)
// slice.
func (m *Manager) Classify(ctx context.Context, images []image.Image) []coredoor.Classification {
	if m == nil || m.classifier == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	result, err := func() (res []coredoor.Classification, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[classifier] panic in %s: %v\n%s", m.classifier.Name(), r, string(debug.Stack()))
				err = fmt.Errorf("panic in classifier %s", m.classifier.Name())
			}
		}()
		return m.classifier.Classify(ctx, images)
	}()

	if err != nil {
		log.Printf("[classifier] %s error: %v", m.classifier.Name(), err)
		return nil
	}
	return result
}
