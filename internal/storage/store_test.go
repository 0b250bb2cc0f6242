package storage

import (
	"errors"
	"io"
	"log"
	"testing"
)

func newTestStore() *Store {
	return NewStore(NewMemoryBackend(), log.New(io.Discard, "", 0))
}

type failingBackend struct {
	*MemoryBackend
	err error
}

func (backend failingBackend) Save(key, value string) error {
	return backend.err
}

func (backend failingBackend) Load(key string) (string, bool, error) {
	return "", false, backend.err
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore()

	type entry struct {
		Text      string `json:"text"`
		Completed bool   `json:"completed"`
	}
	want := []entry{{Text: "write report", Completed: false}, {Text: "call mum", Completed: true}}

	if err := Set(store, KeyTasks, want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got := Get(store, KeyTasks, []entry(nil))
	if len(got) != len(want) {
		t.Fatalf("Get() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStore_AbsentKeyReturnsDefault(t *testing.T) {
	store := newTestStore()

	if got := store.GetString(KeyTheme, "light"); got != "light" {
		t.Errorf("GetString() = %q, want %q", got, "light")
	}
	if got := store.GetBool(KeyAnimationActive, true); !got {
		t.Error("GetBool() = false, want default true")
	}
	if got := Get(store, KeyStudyStats, map[string]int{"total": 7}); got["total"] != 7 {
		t.Errorf("Get() = %v, want default", got)
	}
}

func TestStore_MalformedValueReturnsDefault(t *testing.T) {
	store := newTestStore()
	if err := store.SetString(KeyStudyStats, "{not json"); err != nil {
		t.Fatalf("SetString() error = %v", err)
	}

	got := Get(store, KeyStudyStats, 42)
	if got != 42 {
		t.Errorf("Get() = %v, want fallback 42", got)
	}

	if err := store.SetString(KeyAnimationActive, "maybe"); err != nil {
		t.Fatalf("SetString() error = %v", err)
	}
	if store.GetBool(KeyAnimationActive, false) {
		t.Error("GetBool() on malformed value should return fallback")
	}
}

func TestStore_BoolIsStringified(t *testing.T) {
	store := newTestStore()
	if err := store.SetBool(KeyNotificationsEnabled, true); err != nil {
		t.Fatalf("SetBool() error = %v", err)
	}
	raw, ok := store.Raw(KeyNotificationsEnabled)
	if !ok || raw != "true" {
		t.Errorf("Raw() = %q, %v; want \"true\", true", raw, ok)
	}
}

func TestStore_DecodeKeepsDefaultsForMissingFields(t *testing.T) {
	store := newTestStore()
	if err := store.SetString(KeyAmbientState, `{"activeSound":"ambient-rain","extra":1}`); err != nil {
		t.Fatalf("SetString() error = %v", err)
	}

	state := struct {
		ActiveSound string  `json:"activeSound"`
		Volume      float64 `json:"volume"`
	}{Volume: 0.5}

	if !Decode(store, KeyAmbientState, &state) {
		t.Fatal("Decode() = false, want true")
	}
	if state.ActiveSound != "ambient-rain" {
		t.Errorf("ActiveSound = %q", state.ActiveSound)
	}
	if state.Volume != 0.5 {
		t.Errorf("Volume = %v, want default 0.5", state.Volume)
	}
}

func TestStore_Remove(t *testing.T) {
	store := newTestStore()
	if err := store.SetString(KeyBackground, "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("SetString() error = %v", err)
	}
	if err := store.Remove(KeyBackground); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok := store.Raw(KeyBackground); ok {
		t.Error("key still present after Remove()")
	}
	if err := store.Remove(KeyBackground); err != nil {
		t.Errorf("Remove() on absent key error = %v", err)
	}
}

func TestStore_WriteFailureIsReturned(t *testing.T) {
	backend := failingBackend{MemoryBackend: NewMemoryBackend(), err: ErrQuotaExceeded}
	store := NewStore(backend, log.New(io.Discard, "", 0))

	err := store.SetString(KeyBackground, "data:image/png;base64,AAAA")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("SetString() error = %v, want ErrQuotaExceeded", err)
	}
}

func TestStore_ReadFailureReturnsDefault(t *testing.T) {
	backend := failingBackend{MemoryBackend: NewMemoryBackend(), err: errors.New("disk on fire")}
	store := NewStore(backend, log.New(io.Discard, "", 0))

	if got := store.GetString(KeyMainFocus, "Set Your Focus"); got != "Set Your Focus" {
		t.Errorf("GetString() = %q, want fallback", got)
	}
}
