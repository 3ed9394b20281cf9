// Package transcript stores voice transcription history. Each entry keeps
// its text, per-word timings and a companion base64 audio record saved under
// its own storage key so the list record stays small.
package transcript

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"storm/storage"
)

// MaxEntries bounds the history; the oldest entry and its audio are dropped
// when the cap is exceeded.
const MaxEntries = 50

// fallbackWordSpan approximates speech pace when an entry has no duration.
const fallbackWordSpan = 0.4

// Word is one recognized word with its time span in seconds.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcription is one voice note. Duration is in seconds.
type Transcription struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Duration  float64   `json:"duration"`
	Words     []Word    `json:"words"`
}

// Store manages the transcription list and audio records.
type Store struct {
	store storage.Store
	items []Transcription
}

// NewStore loads history from storage. Entries written before word timings
// existed are upgraded in place with synthesized timings.
func NewStore(store storage.Store) *Store {
	s := &Store{store: store}
	if raw, ok := store.Get(storage.KeyTranscriptions); ok {
		if err := json.Unmarshal([]byte(raw), &s.items); err != nil {
			log.Printf("transcription history unreadable, starting empty: %v", err)
			s.items = nil
		}
	}
	for i := range s.items {
		normalize(&s.items[i])
	}
	if len(s.items) > MaxEntries {
		for _, old := range s.items[MaxEntries:] {
			s.removeAudio(old.ID)
		}
		s.items = s.items[:MaxEntries]
	}
	return s
}

// Add records a new transcription, newest first. audioBase64 may be empty.
func (s *Store) Add(text string, duration float64, words []Word, audioBase64 string) *Transcription {
	entry := Transcription{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: time.Now(),
		Duration:  duration,
		Words:     words,
	}
	normalize(&entry)

	s.items = append([]Transcription{entry}, s.items...)
	for len(s.items) > MaxEntries {
		old := s.items[len(s.items)-1]
		s.removeAudio(old.ID)
		s.items = s.items[:len(s.items)-1]
	}

	if audioBase64 != "" {
		if err := s.store.Set(storage.AudioKey(entry.ID), audioBase64); err != nil {
			log.Printf("persist audio for %s: %v", entry.ID, err)
		}
	}
	s.persist()
	return &s.items[0]
}

// All returns the history, newest first.
func (s *Store) All() []Transcription {
	out := make([]Transcription, len(s.items))
	copy(out, s.items)
	return out
}

// Audio returns the stored base64 audio for an entry, if any.
func (s *Store) Audio(id string) (string, bool) {
	return s.store.Get(storage.AudioKey(id))
}

// Delete removes an entry and its audio record. Unknown ids are a no-op.
func (s *Store) Delete(id string) {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.removeAudio(id)
			s.persist()
			return
		}
	}
}

func (s *Store) removeAudio(id string) {
	if err := s.store.Remove(storage.AudioKey(id)); err != nil {
		log.Printf("remove audio for %s: %v", id, err)
	}
}

func (s *Store) persist() {
	raw, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("marshal transcription history: %v", err)
		return
	}
	if err := s.store.Set(storage.KeyTranscriptions, string(raw)); err != nil {
		log.Printf("persist transcription history: %v", err)
	}
}

// normalize fills gaps left by older record shapes: missing ids and missing
// word timings. Synthesized timings spread the words evenly across the
// recorded duration.
func normalize(t *Transcription) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if len(t.Words) > 0 || t.Text == "" {
		return
	}
	fields := strings.Fields(t.Text)
	span := fallbackWordSpan
	if t.Duration > 0 {
		span = t.Duration / float64(len(fields))
	}
	t.Words = make([]Word, len(fields))
	for i, w := range fields {
		t.Words[i] = Word{
			Text:  w,
			Start: float64(i) * span,
			End:   float64(i+1) * span,
		}
	}
	if t.Duration == 0 {
		t.Duration = float64(len(fields)) * span
	}
}
