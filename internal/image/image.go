// Package image defines the opaque pixel-data carrier passed between the
// camera collaborator, the classifier collaborator, and the pure core.
// The core never inspects or mutates pixel data — it only ever holds
// Images long enough to pass them from a capture effect to a classify
// effect.
package image

// Image is an immutable owner of raw pixel data. Concrete collaborator
// implementations (a real RTSP/USB camera driver, a test fixture) decide
// how the bytes are produced; the core only needs the dimensions to be
// self-consistent and the bytes to be safe to read concurrently.
type Image struct {
	Width    int
	Height   int
	Channels int
	Bytes    []byte
}

// Size reports the expected byte length for a well-formed Image, which
// callers may use to sanity-check a driver's output.
func (i Image) Size() int {
	return i.Width * i.Height * i.Channels
}
