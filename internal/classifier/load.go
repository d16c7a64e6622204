package classifier

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromEnv selects and builds the configured classifier.
//
// CLASSIFIER selects the implementation ("fake" when unset or
// unrecognized); CLASSIFIER_TIMEOUT_SECONDS overrides the per-call
// timeout.
func LoadFromEnv() *Manager {
	name := strings.ToLower(strings.TrimSpace(os.Getenv("CLASSIFIER")))
	timeout := envDurationSeconds("CLASSIFIER_TIMEOUT_SECONDS", 10*time.Second)

	var c Classifier
	switch name {
	case "", "fake":
		c = NewFake()
	default:
		log.Printf("[classifier] unknown classifier %q, falling back to fake", name)
		c = NewFake()
	}

	log.Printf("[classifier] using %s (timeout %s)", c.Name(), timeout)
	return NewManager(c, timeout)
}

func envDurationSeconds(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	sec, err := strconv.Atoi(v)
	if err != nil || sec <= 0 {
		return def
	}
	return time.Duration(sec) * time.Second
}
