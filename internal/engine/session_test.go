package engine

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}
func (noopLogger) Fatal(msg string, args ...any) {}

func TestSession_RunExecutesAllTasks(t *testing.T) {
	s := NewSession(4, noopLogger{})
	defer s.Close()

	var counter atomic.Int64
	tasks := make([]Task, 100)
	for i := range tasks {
		tasks[i] = func() error { counter.Add(1); return nil }
	}

	require.NoError(t, s.Run(tasks...))
	require.Equal(t, int64(100), counter.Load())
}

func TestSession_RunReportsTaskErrors(t *testing.T) {
	s := NewSession(2, noopLogger{})
	defer s.Close()

	failed := errors.New("task failed")
	err := s.Run(
		func() error { return nil },
		func() error { return failed },
	)
	require.ErrorIs(t, err, failed)
}

func TestSession_RunWithNoTasks(t *testing.T) {
	s := NewSession(2, noopLogger{})
	defer s.Close()

	require.NoError(t, s.Run())
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	s := NewSession(1, noopLogger{})
	s.Close()
	s.Close()
}

func TestSession_DefaultWorkers(t *testing.T) {
	s := NewSession(0, noopLogger{})
	defer s.Close()

	var counter atomic.Int64
	require.NoError(t, s.Run(func() error { counter.Add(1); return nil }))
	require.Equal(t, int64(1), counter.Load())
}
