package autosave_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowlnow/crm/internal/autosave"
)

type draft struct {
	BusinessName string `json:"businessName"`
	Notes        string `json:"notes"`
}

type recorder struct {
	mu    sync.Mutex
	saved []draft
	err   error
}

func (r *recorder) save(_ context.Context, d draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}

	r.saved = append(r.saved, d)

	return nil
}

func (r *recorder) snapshot() []draft {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]draft(nil), r.saved...)
}

func TestCoordinator_CollapsesRapidUpdates(t *testing.T) {
	rec := &recorder{}

	c := autosave.New(30*time.Millisecond, rec.save, nil)
	defer c.Close()

	c.Update(draft{BusinessName: "H"})
	c.Update(draft{BusinessName: "Ho"})
	c.Update(draft{BusinessName: "Holiday Bowl"})

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	saved := rec.snapshot()
	assert.Equal(t, "Holiday Bowl", saved[0].BusinessName, "only the latest state is saved")

	// Quiet afterwards: no second save fires.
	time.Sleep(60 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1)
}

func TestCoordinator_SkipsUnchangedState(t *testing.T) {
	rec := &recorder{}

	c := autosave.New(20*time.Millisecond, rec.save, nil)
	defer c.Close()

	d := draft{BusinessName: "Holiday Bowl", Notes: "league night"}

	c.Update(d)

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	// Same serialized state again: nothing to do.
	c.Update(d)

	time.Sleep(60 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1)
}

func TestCoordinator_NoRetryOnFailure(t *testing.T) {
	rec := &recorder{err: errors.New("store unavailable")}

	var (
		mu       sync.Mutex
		failures int
	)

	c := autosave.New(20*time.Millisecond, rec.save, func(_ error) {
		mu.Lock()
		failures++
		mu.Unlock()
	})
	defer c.Close()

	c.Update(draft{BusinessName: "Holiday Bowl"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return failures == 1
	}, time.Second, 5*time.Millisecond)

	// No retry without a new update.
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, 1, failures)
	mu.Unlock()

	// The next save attempt happens when the state changes again.
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()

	c.Update(draft{BusinessName: "Holiday Bowl", Notes: "retry"})

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestCoordinator_CloseCancelsPendingSave(t *testing.T) {
	rec := &recorder{}

	c := autosave.New(50*time.Millisecond, rec.save, nil)

	c.Update(draft{BusinessName: "Holiday Bowl"})
	c.Close()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot(), "no save fires after Close")
}
