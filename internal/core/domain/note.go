package domain

import (
	"fmt"
	"time"
)

// Draft store keys. They are fixed so every session of the same profile
// reads and writes the same records.
const (
	// KeyDraft holds the most recent editor buffer.
	KeyDraft = "revisify.draft"

	// KeyNote holds the published note text.
	KeyNote = "revisify.note"

	// KeyPublishedAt holds the publish time in RFC 3339 form.
	KeyPublishedAt = "revisify.published_at"

	// KeyRevision holds a unique id for each publish.
	KeyRevision = "revisify.revision"
)

// PublishedKeys returns the keys that make up a PublishedNote.
// They are always written and read together.
func PublishedKeys() []string {
	return []string{KeyNote, KeyPublishedAt, KeyRevision}
}

// PublishedNote is the snapshot exposed to the viewer.
type PublishedNote struct {
	// Text is the note body at publish time.
	Text string `json:"text"`

	// PublishedAt is when the snapshot was taken.
	PublishedAt time.Time `json:"published_at"`

	// Revision identifies this publish.
	Revision string `json:"revision"`
}

// Entries returns the store entries for the note.
func (n PublishedNote) Entries() map[string]string {
	return map[string]string{
		KeyNote:        n.Text,
		KeyPublishedAt: n.PublishedAt.UTC().Format(time.RFC3339Nano),
		KeyRevision:    n.Revision,
	}
}

// PublishedNoteFromEntries rebuilds a note from store entries.
// It returns nil when nothing has been published.
func PublishedNoteFromEntries(entries map[string]string) (*PublishedNote, error) {
	text, ok := entries[KeyNote]
	if !ok {
		return nil, nil
	}

	note := &PublishedNote{
		Text:     text,
		Revision: entries[KeyRevision],
	}
	if raw := entries[KeyPublishedAt]; raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: published_at %q", ErrInvalidInput, raw)
		}
		note.PublishedAt = t
	}
	return note, nil
}

// Rendered is the derived preview of a buffer.
type Rendered struct {
	// HTML is the sanitized fragment.
	HTML string `json:"html"`

	// Counts are the statistics of the rendered source.
	Counts Counts `json:"counts"`
}

// ViewedNote is what the viewer displays.
type ViewedNote struct {
	// Note is the published record, nil when the placeholder is shown.
	Note *PublishedNote `json:"note,omitempty"`

	// Source is the markdown that was rendered.
	Source string `json:"source"`

	// HTML is the rendered fragment.
	HTML string `json:"html"`
}

// IsPlaceholder returns true if nothing has been published yet.
func (v ViewedNote) IsPlaceholder() bool {
	return v.Note == nil
}

// Revision returns the revision shown, or "" for the placeholder.
func (v ViewedNote) Revision() string {
	if v.Note == nil {
		return ""
	}
	return v.Note.Revision
}
