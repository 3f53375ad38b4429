package engine

import (
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/oenolab/winequality/internal/shared/logging"
)

// Session is the compute handle the pipeline runs on. It owns a worker
// pool used to fan out independent work such as cross-validation fits,
// and must be closed exactly once when the run ends, regardless of
// which paths executed.
type Session struct {
	id     uuid.UUID
	pool   *Pool
	logger logging.Logger

	closeOnce sync.Once
}

// NewSession starts a session with the given parallelism. workers <= 0
// uses one worker per CPU.
func NewSession(workers int, logger logging.Logger) *Session {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	s := &Session{
		id:     uuid.New(),
		pool:   NewPool(workers),
		logger: logger,
	}
	s.pool.Start()

	logger.Info("Session started", "session_id", s.id.String(), "workers", workers)
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Run executes all tasks on the pool, blocks until every one has
// finished and returns the joined task errors.
func (s *Session) Run(tasks ...Task) error {
	return s.pool.Run(tasks...)
}

// Close shuts the session down. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.pool.Close()
		s.logger.Info("Session stopped", "session_id", s.id.String())
	})
}
