package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-booking-assistant/internal/booking"
	"github.com/iliyamo/movie-booking-assistant/internal/model"
)

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry(10, time.Minute)

	s, created := r.Resolve("", "alice")
	require.True(t, created)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "alice", s.Username())

	again, created := r.Resolve(s.ID, "alice")
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := r.Resolve("missing", "")
	assert.True(t, created)
	assert.NotEqual(t, s.ID, other.ID)
	assert.Equal(t, model.GuestUsername, other.Username())
	assert.Equal(t, 2, r.Len())
}

func TestRegistryResolveKeepsOwnership(t *testing.T) {
	r := NewRegistry(10, time.Minute)

	guest := r.Create("")
	s, created := r.Resolve(guest.ID, "alice")
	assert.False(t, created)
	assert.Same(t, guest, s)
	assert.Equal(t, "alice", s.Username())

	s, created = r.Resolve(guest.ID, "ALICE")
	assert.False(t, created)
	assert.Same(t, guest, s)

	for _, name := range []string{"mallory", ""} {
		s, created = r.Resolve(guest.ID, name)
		assert.True(t, created, name)
		assert.NotEqual(t, guest.ID, s.ID)
	}
	assert.Equal(t, "alice", guest.Username())
}

func TestRegistrySweep(t *testing.T) {
	r := NewRegistry(10, time.Minute)
	now := time.Now()
	stale := r.Create("")
	stale.Touch(now.Add(-2 * time.Minute))
	fresh := r.Create("")
	fresh.Touch(now)

	assert.Equal(t, 1, r.Sweep(now))
	_, ok := r.Get(stale.ID)
	assert.False(t, ok)
	_, ok = r.Get(fresh.ID)
	assert.True(t, ok)
}

func TestRegistryWithoutTTLNeverSweeps(t *testing.T) {
	r := NewRegistry(10, 0)
	s := r.Create("")
	s.Touch(time.Now().Add(-24 * time.Hour))

	g := &Suggester{Registry: r, Interval: time.Second}
	g.Tick("Try asking for recommendations!", time.Now())

	_, ok := r.Get(s.ID)
	assert.True(t, ok)
	assert.Equal(t, 0, r.Sweep(time.Now()))
}

func TestSessionsAreIndependent(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry(10, 0)
	a := r.Create("")
	b := r.Create("")

	f.say(a, "book Heartstrings", "today")
	f.say(b, "book Cosmic Dreams")

	assert.Equal(t, booking.AwaitingTime, a.Draft().Step)
	assert.Equal(t, "Heartstrings", a.Draft().Movie)
	assert.Equal(t, booking.AwaitingDate, b.Draft().Step)
	assert.Equal(t, "Cosmic Dreams", b.Draft().Movie)
}

func TestSuggesterOffersWithoutTouchingDrafts(t *testing.T) {
	f := newFixture(t)
	r := NewRegistry(10, 0)
	s := r.Create("")
	f.say(s, "book Heartstrings")
	before := s.Draft()

	g := &Suggester{Registry: r}
	g.Tick("tip", time.Now())

	assert.Equal(t, before, s.Draft())
	tip, ok := s.takeSuggestion()
	assert.True(t, ok)
	assert.Equal(t, "tip", tip)
}

func TestSuggesterRunStopsOnCancel(t *testing.T) {
	r := NewRegistry(10, 0)
	s := r.Create("")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	g := &Suggester{Registry: r, Interval: 5 * time.Millisecond, Pick: func() string { return "tick" }}
	go func() {
		g.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(s.mailbox) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("suggester did not stop")
	}
}
