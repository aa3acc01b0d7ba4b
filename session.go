package gmtstamp

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Session is a handle to a running GMT engine.
type Session interface {
	Version(ctx context.Context) (EngineVersion, error)

	// CallModule runs a GMT module. Failures reported by GMT are returned as
	// KindEngine errors and are not interpreted further.
	CallModule(ctx context.Context, module string, args []string) error
}

type Call struct {
	Module string
	Args   []string
}

// RecordingSession pretends to be a GMT engine of a fixed version and keeps
// the most recent calls made against it. It backs dry runs and tests.
type RecordingSession struct {
	engineVersion EngineVersion

	// If set, called for every module call; a non-nil return is wrapped as a
	// KindEngine error after the call is recorded.
	Fail func(Call) error

	mutex sync.Mutex
	calls *ThreadUnsafeRing[Call]

	logger logrus.FieldLogger
}

func NewRecordingSession(version EngineVersion, capacity int) *RecordingSession {
	return &RecordingSession{
		engineVersion: version,
		calls:         NewRing[Call](capacity),
		logger:        logrus.WithField("tag", "RecordingSession"),
	}
}

func (s *RecordingSession) Version(ctx context.Context) (EngineVersion, error) {
	return s.engineVersion, nil
}

func (s *RecordingSession) CallModule(ctx context.Context, module string, args []string) error {
	call := Call{
		Module: module,
		Args:   append([]string(nil), args...),
	}

	s.mutex.Lock()
	s.calls.Push(call)
	s.mutex.Unlock()

	s.logger.WithFields(logrus.Fields{
		"module": module,
		"args":   args,
	}).Debug("recorded module call")

	if s.Fail != nil {
		if err := s.Fail(call); err != nil {
			return newError(KindEngine, "gmt "+module+" failed", err)
		}
	}

	return nil
}

// Calls returns the recorded calls, oldest first.
func (s *RecordingSession) Calls() []Call {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.calls.ReadAllOrdered()
}

func (s *RecordingSession) CallsTo(module string) []Call {
	return Filter(s.Calls(), func(call Call) bool {
		return call.Module == module
	})
}
