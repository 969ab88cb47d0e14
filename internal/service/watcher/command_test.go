package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/security-panel/internal/domain/security"
)

var errUnavailable = errors.New("panel unavailable")

// scriptedSource returns queued results, repeating the last one.
type scriptedSource struct {
	// results holds the remaining responses.
	results []result
	// mu protects results.
	mu sync.Mutex
}

// result is one scripted response.
type result struct {
	status security.Status
	err    error
}

// Status pops the next scripted response.
func (s *scriptedSource) Status(context.Context) (security.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}

	return next.status, next.err
}

// TestWatch_ReportsChangesOnly verifies that repeated states are reported once and errors are skipped.
func TestWatch_ReportsChangesOnly(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		armedAt := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		rearmedAt := armedAt.Add(time.Hour)

		source := &scriptedSource{results: []result{
			{status: security.Status{State: security.StateDisarmed}},
			{status: security.Status{State: security.StateDisarmed}},
			{err: errUnavailable},
			{status: security.Status{State: security.StateArmed, ChangedAt: armedAt}},
			{status: security.Status{State: security.StateArmed, ChangedAt: rearmedAt}},
			{status: security.Status{State: security.StateAlarm, ChangedAt: rearmedAt.Add(time.Minute)}},
		}}

		ctx, cancel := context.WithCancel(context.Background())

		var seen []security.StateKind

		done := make(chan struct{})

		go func() {
			Watch(ctx, source, time.Second, func(s security.Status) {
				seen = append(seen, s.State)
			})
			close(done)
		}()

		time.Sleep(10 * time.Second)
		synctest.Wait()

		cancel()
		<-done

		require.Equal(t, []security.StateKind{
			security.StateDisarmed,
			security.StateArmed,
			security.StateArmed,
			security.StateAlarm,
		}, seen)
	})
}

// TestRun_MissingConfig verifies that a missing settings file is reported.
func TestRun_MissingConfig(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{ConfigPath: "does-not-exist.yaml"})
	require.Error(t, err)
}
