package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventServicePrune(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	user := mustCreateUser(t, NewUserService(db, events), "author")

	old := time.Now().UTC().Add(-48 * time.Hour)
	_, err := db.Exec("INSERT INTO events (id, type, level, message, user_id, created_at) VALUES ('old', 'note.create', 'info', 'old', ?, ?)", user.ID, old)
	require.NoError(t, err)
	require.NoError(t, events.CreateEvent("note.create", "info", "fresh", &user.ID))

	removed, err := events.PruneEventsBefore(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	recent, err := events.GetRecentEventsForUser(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2) // user.create + fresh
	for _, e := range recent {
		assert.NotEqual(t, "old", e.ID)
	}
}

func TestEventServiceLimit(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	user := mustCreateUser(t, NewUserService(db, events), "author")

	for i := 0; i < 5; i++ {
		require.NoError(t, events.CreateEvent("note.create", "info", "n", &user.ID))
	}
	recent, err := events.GetRecentEventsForUser(user.ID, 3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}
