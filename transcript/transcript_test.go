package transcript

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"storm/storage"
)

func TestAddStoresEntryAndAudio(t *testing.T) {
	store := storage.NewMemoryStore()
	s := NewStore(store)

	entry := s.Add("hello world", 1.0, nil, "YXVkaW8=")

	if entry.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(s.All()) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(s.All()))
	}
	audio, ok := s.Audio(entry.ID)
	if !ok || audio != "YXVkaW8=" {
		t.Errorf("expected stored audio, got %q ok=%v", audio, ok)
	}
}

func TestAddSynthesizesWordTimings(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())

	entry := s.Add("one two three four", 2.0, nil, "")

	if len(entry.Words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(entry.Words))
	}
	if entry.Words[0].Start != 0 || entry.Words[0].End != 0.5 {
		t.Errorf("expected first word span [0, 0.5], got [%v, %v]", entry.Words[0].Start, entry.Words[0].End)
	}
	if entry.Words[3].End != 2.0 {
		t.Errorf("expected last word to end at duration, got %v", entry.Words[3].End)
	}
}

func TestAddKeepsProvidedTimings(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())
	words := []Word{{Text: "hi", Start: 0.2, End: 0.9}}

	entry := s.Add("hi", 1.0, words, "")

	if len(entry.Words) != 1 || entry.Words[0].Start != 0.2 {
		t.Errorf("expected provided timings to survive, got %+v", entry.Words)
	}
}

func TestHistoryCapEvictsOldestWithAudio(t *testing.T) {
	store := storage.NewMemoryStore()
	s := NewStore(store)

	first := s.Add("entry zero", 1.0, nil, "b0")
	for i := 1; i <= MaxEntries; i++ {
		s.Add(fmt.Sprintf("entry %d", i), 1.0, nil, fmt.Sprintf("b%d", i))
	}

	if len(s.All()) != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, len(s.All()))
	}
	if _, ok := s.Audio(first.ID); ok {
		t.Error("expected evicted entry's audio to be removed")
	}
}

func TestDeleteRemovesEntryAndAudio(t *testing.T) {
	store := storage.NewMemoryStore()
	s := NewStore(store)

	entry := s.Add("to delete", 1.0, nil, "blob")
	s.Delete(entry.ID)

	if len(s.All()) != 0 {
		t.Error("expected empty history after delete")
	}
	if _, ok := store.Get(storage.AudioKey(entry.ID)); ok {
		t.Error("expected audio record removed")
	}

	// Unknown id is a no-op.
	s.Delete("missing")
}

func TestLoadUpgradesLegacyEntries(t *testing.T) {
	store := storage.NewMemoryStore()

	legacy := []map[string]any{
		{"text": "old note", "timestamp": time.Now().Format(time.RFC3339)},
	}
	raw, _ := json.Marshal(legacy)
	store.Set(storage.KeyTranscriptions, string(raw))

	s := NewStore(store)
	items := s.All()
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	if items[0].ID == "" {
		t.Error("expected synthesized id for legacy entry")
	}
	if len(items[0].Words) != 2 {
		t.Errorf("expected synthesized word timings, got %+v", items[0].Words)
	}
}

func TestLoadCorruptHistoryStartsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Set(storage.KeyTranscriptions, "{broken")

	s := NewStore(store)
	if len(s.All()) != 0 {
		t.Error("expected empty history for corrupt record")
	}
}
