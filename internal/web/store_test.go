package web

import (
	"testing"
	"time"

	"github.com/JonMunkholm/PromptCompare/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(n int) []core.PromptRecord {
	out := make([]core.PromptRecord, n)
	for i := range out {
		out[i] = core.PromptRecord{ID: i, Before: "b", After: "a"}
	}
	return out
}

func TestSessionStore_Acquire(t *testing.T) {
	st := NewSessionStore(core.ViewRaw, time.Hour)

	id, e, created := st.Acquire("")
	require.True(t, created)
	require.NotEmpty(t, id)
	assert.Equal(t, core.ViewRaw, e.Snapshot().ViewMode)

	id2, e2, created := st.Acquire(id)
	assert.False(t, created)
	assert.Equal(t, id, id2)
	assert.Same(t, e, e2)

	id3, _, created := st.Acquire("forged-or-expired")
	assert.True(t, created)
	assert.NotEqual(t, "forged-or-expired", id3)
	assert.Equal(t, 2, st.Len())
}

func TestSessionEntry_StaleTicketIsDiscarded(t *testing.T) {
	st := NewSessionStore(core.ViewRendered, time.Hour)
	_, e, _ := st.Acquire("")

	slow := e.BeginIngest()
	fast := e.BeginIngest()

	assert.True(t, e.CommitIngest(fast, records(3)))
	assert.False(t, e.CommitIngest(slow, records(1)))
	assert.Len(t, e.Snapshot().Records, 3)
}

func TestSessionEntry_FailedLaterUploadDoesNotBlockEarlier(t *testing.T) {
	st := NewSessionStore(core.ViewRendered, time.Hour)
	_, e, _ := st.Acquire("")

	earlier := e.BeginIngest()
	_ = e.BeginIngest() // parse fails or the file is empty, so it never commits

	assert.True(t, e.CommitIngest(earlier, records(2)))
	assert.Len(t, e.Snapshot().Records, 2)
}

func TestSessionEntry_TicketAfterResetLoads(t *testing.T) {
	st := NewSessionStore(core.ViewRendered, time.Hour)
	_, e, _ := st.Acquire("")

	stale := e.BeginIngest()
	e.Reset()
	fresh := e.BeginIngest()

	assert.False(t, e.CommitIngest(stale, records(1)))
	assert.True(t, e.CommitIngest(fresh, records(2)))
	assert.Len(t, e.Snapshot().Records, 2)
}

func TestSessionEntry_ResetInvalidatesInFlight(t *testing.T) {
	st := NewSessionStore(core.ViewRendered, time.Hour)
	_, e, _ := st.Acquire("")

	ticket := e.BeginIngest()
	e.Reset()

	assert.False(t, e.CommitIngest(ticket, records(2)))
	assert.Empty(t, e.Snapshot().Records)
}

func TestSessionEntry_CommitSelectsFirst(t *testing.T) {
	st := NewSessionStore(core.ViewRendered, time.Hour)
	_, e, _ := st.Acquire("")

	require.True(t, e.CommitIngest(e.BeginIngest(), records(3)))
	require.NoError(t, e.Update(func(s *core.Session) error { return s.Select(2) }))
	require.True(t, e.CommitIngest(e.BeginIngest(), records(2)))

	assert.Equal(t, 0, e.Snapshot().SelectedIndex)
}

func TestSessionStore_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st := NewSessionStore(core.ViewRendered, time.Hour)
	st.now = func() time.Time { return now }

	idle, _, _ := st.Acquire("")
	now = now.Add(45 * time.Minute)
	active, _, _ := st.Acquire("")

	now = now.Add(30 * time.Minute)
	assert.Equal(t, 1, st.Sweep())
	assert.Equal(t, 1, st.Len())

	_, _, created := st.Acquire(active)
	assert.False(t, created)
	_, _, created = st.Acquire(idle)
	assert.True(t, created, "evicted session is replaced")
}
