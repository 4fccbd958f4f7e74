package services

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/isdelr/notes-be/internal/database"
	"github.com/isdelr/notes-be/internal/models"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated in-memory database that lives for one test.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

type notification struct {
	userID  string
	action  string
	payload interface{}
}

// recordingNotifier collects notifications instead of sending them.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(userID, action string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{userID, action, payload})
}

func (n *recordingNotifier) actions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, s := range n.sent {
		out = append(out, s.action)
	}
	return out
}

func mustCreateUser(t *testing.T, users *UserService, username string) models.User {
	t.Helper()
	user, err := users.CreateUser(username, "password")
	require.NoError(t, err)
	return user
}
