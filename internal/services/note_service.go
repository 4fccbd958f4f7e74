package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/notes-be/internal/models"
)

// Notifier pushes a message to every live connection of a user.
type Notifier interface {
	Notify(userID, action string, payload interface{})
}

// NoteServiceProvider defines the interface for note services.
type NoteServiceProvider interface {
	ListNotesForAuthor(authorID string) ([]models.Note, error)
	GetNoteForAuthor(slug, authorID string) (models.Note, error)
	SlugExists(slug, excludeID string) (bool, error)
	CreateNote(note models.Note) (models.Note, error)
	UpdateNote(note models.Note) (models.Note, error)
	DeleteNote(id, authorID string) error
}

// NoteService provides business logic for note management. Every lookup
// is scoped to the author, so another user's note is indistinguishable
// from a missing one.
type NoteService struct {
	db           *sql.DB
	eventService EventServiceProvider
	notifier     Notifier
}

// NewNoteService creates a new NoteService. notifier may be nil.
func NewNoteService(db *sql.DB, eventService EventServiceProvider, notifier Notifier) *NoteService {
	return &NoteService{
		db:           db,
		eventService: eventService,
		notifier:     notifier,
	}
}

const noteColumns = "id, title, text, slug, author_id, created_at"

// scanNote is a helper to scan a note from a row or rows object.
func scanNote(scanner interface{ Scan(...interface{}) error }) (models.Note, error) {
	var note models.Note
	err := scanner.Scan(&note.ID, &note.Title, &note.Text, &note.Slug, &note.AuthorID, &note.CreatedAt)
	return note, err
}

// ListNotesForAuthor retrieves an author's notes in creation order.
func (s *NoteService) ListNotesForAuthor(authorID string) ([]models.Note, error) {
	rows, err := s.db.Query("SELECT "+noteColumns+" FROM notes WHERE author_id = ? ORDER BY rowid", authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// GetNoteForAuthor retrieves a note by slug if it belongs to authorID.
func (s *NoteService) GetNoteForAuthor(slug, authorID string) (models.Note, error) {
	row := s.db.QueryRow("SELECT "+noteColumns+" FROM notes WHERE slug = ? AND author_id = ?", slug, authorID)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, fmt.Errorf("note %s: %w", slug, ErrNoteNotFound)
		}
		return models.Note{}, err
	}
	return note, nil
}

// SlugExists reports whether a note other than excludeID uses slug.
func (s *NoteService) SlugExists(slug, excludeID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM notes WHERE slug = ? AND id != ?)", slug, excludeID).Scan(&exists)
	return exists, err
}

// CreateNote stores a new note. ID and CreatedAt are assigned here.
func (s *NoteService) CreateNote(note models.Note) (models.Note, error) {
	note.ID = uuid.New().String()
	note.CreatedAt = time.Now().UTC()

	stmt, err := s.db.Prepare("INSERT INTO notes(" + noteColumns + ") VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(note.ID, note.Title, note.Text, note.Slug, note.AuthorID, note.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Note{}, fmt.Errorf("note %s: %w", note.Slug, ErrSlugTaken)
		}
		return models.Note{}, fmt.Errorf("failed to execute statement: %w", err)
	}

	s.eventService.CreateEvent("note.create", "info", fmt.Sprintf("Note '%s' created.", note.Title), &note.AuthorID)
	s.notify(note.AuthorID, "note.created", note)
	return note, nil
}

// UpdateNote overwrites title, text and slug of an author's note.
func (s *NoteService) UpdateNote(note models.Note) (models.Note, error) {
	stmt, err := s.db.Prepare("UPDATE notes SET title = ?, text = ?, slug = ? WHERE id = ? AND author_id = ?")
	if err != nil {
		return models.Note{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(note.Title, note.Text, note.Slug, note.ID, note.AuthorID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Note{}, fmt.Errorf("note %s: %w", note.Slug, ErrSlugTaken)
		}
		return models.Note{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Note{}, err
	} else if n == 0 {
		return models.Note{}, fmt.Errorf("note %s: %w", note.ID, ErrNoteNotFound)
	}

	updated, err := s.GetNoteForAuthor(note.Slug, note.AuthorID)
	if err != nil {
		return models.Note{}, err
	}

	s.eventService.CreateEvent("note.update", "info", fmt.Sprintf("Note '%s' updated.", updated.Title), &updated.AuthorID)
	s.notify(updated.AuthorID, "note.updated", updated)
	return updated, nil
}

// DeleteNote removes an author's note.
func (s *NoteService) DeleteNote(id, authorID string) error {
	res, err := s.db.Exec("DELETE FROM notes WHERE id = ? AND author_id = ?", id, authorID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("note %s: %w", id, ErrNoteNotFound)
	}

	s.eventService.CreateEvent("note.delete", "warn", fmt.Sprintf("Note %s was deleted.", id), &authorID)
	s.notify(authorID, "note.deleted", map[string]string{"id": id})
	return nil
}

func (s *NoteService) notify(userID, action string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.Notify(userID, action, payload)
	}
}
