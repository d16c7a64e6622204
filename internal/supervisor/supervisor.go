// Package supervisor implements the single-writer event loop that
// owns the core's model: it calls coredoor.Init once, then
// dequeues messages from a bounded mailbox in FIFO order, calls
// coredoor.Transition exactly once per message, hands every resulting
// effect to an interpreter, and publishes every model and message it
// sees to read-only observers.
package supervisor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sua-org/smart-door/internal/coredoor"
	"github.com/sua-org/smart-door/internal/pubsub"
)

// mailboxCapacity bounds the message queue. A full mailbox means the
// effect interpreter is producing completions faster than the loop
// can consume them; Enqueue blocks rather than silently dropping, the
// same backpressure the teacher's worker channels apply.
const mailboxCapacity = 256

// dequeueTimeout is how long the loop waits on an empty mailbox
// before checking whether it should stop, mirroring the Python
// original's 100ms queue.get(timeout=...) poll.
const dequeueTimeout = 100 * time.Millisecond

// Interpreter is the subset of internal/interpreter.Interpreter the
// supervisor depends on, named here so this package can be tested
// without wiring real collaborators.
type Interpreter interface {
	Execute(ctx context.Context, effect coredoor.Effect, enqueue func(coredoor.Msg))
	Stop()
}

// Supervisor is the state-machine runner. The zero value is not
// usable; construct with New.
type Supervisor struct {
	interpreter Interpreter
	config      coredoor.Config

	models *pubsub.Topic[coredoor.Model]
	msgs   *pubsub.Topic[coredoor.Msg]

	mailbox chan coredoor.Msg

	mu      sync.Mutex
	model   coredoor.Model
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New builds a Supervisor around interpreter and cfg. Call Start to
// begin running it.
func New(interpreter Interpreter, cfg coredoor.Config) *Supervisor {
	return &Supervisor{
		interpreter: interpreter,
		config:      cfg,
		models:      pubsub.New[coredoor.Model](),
		msgs:        pubsub.New[coredoor.Msg](),
		mailbox:     make(chan coredoor.Msg, mailboxCapacity),
	}
}

// Models returns the replay-1 observable of every model produced,
// including the initial one.
func (s *Supervisor) Models() *pubsub.Topic[coredoor.Model] {
	return s.models
}

// Msgs returns the observable of every message consumed by the loop.
func (s *Supervisor) Msgs() *pubsub.Topic[coredoor.Msg] {
	return s.msgs
}

// Enqueue submits msg for processing. It is safe to call from any
// goroutine; the interpreter's effect workers use it to report
// completions and collaborator events.
func (s *Supervisor) Enqueue(msg coredoor.Msg) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return
	}
	s.mailbox <- msg
}

// Start calls Init, publishes the initial model, dispatches the
// initial effects, and begins the message loop on its own goroutine.
// Start must be called at most once.
func (s *Supervisor) Start(ctx context.Context) {
	log.Printf("[supervisor] starting")

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	model, effects := coredoor.Init(s.config)

	s.mu.Lock()
	s.model = model
	s.running = true
	s.mu.Unlock()

	s.models.Publish(model)
	s.dispatch(ctx, effects)

	go s.run(ctx)

	log.Printf("[supervisor] started")
}

// Stop signals the loop to exit and blocks until it has, then stops
// the interpreter's ticker. In-flight effect workers are abandoned;
// their completions are dropped because the mailbox stops accepting.
func (s *Supervisor) Stop() {
	log.Printf("[supervisor] stopping")

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		log.Printf("[supervisor] already stopped")
		return
	}
	s.running = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	<-s.done
	s.interpreter.Stop()

	log.Printf("[supervisor] stopped")
}

func (s *Supervisor) run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.mailbox:
			s.msgs.Publish(msg)

			s.mu.Lock()
			current := s.model
			s.mu.Unlock()

			next, effects := coredoor.Transition(current, msg)

			s.mu.Lock()
			s.model = next
			s.mu.Unlock()

			s.models.Publish(next)
			s.dispatch(ctx, effects)
		case <-time.After(dequeueTimeout):
			continue
		}
	}
}

func (s *Supervisor) dispatch(ctx context.Context, effects []coredoor.Effect) {
	for _, effect := range effects {
		s.interpreter.Execute(ctx, effect, s.Enqueue)
	}
}
