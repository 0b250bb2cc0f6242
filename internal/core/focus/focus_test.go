package focus

import (
	"io"
	"log"
	"testing"

	"focushub/internal/storage"
)

func TestTitle(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend(), log.New(io.Discard, "", 0))
	title := NewTitle(store)

	if got := title.Get(); got != DefaultTitle {
		t.Errorf("Get() = %q, want default", got)
	}
	if got := title.EditValue(); got != "" {
		t.Errorf("EditValue() = %q, want empty", got)
	}

	shown, err := title.Set("  Finish chapter 3 ")
	if err != nil || shown != "Finish chapter 3" {
		t.Fatalf("Set() = %q, %v", shown, err)
	}
	if got := title.EditValue(); got != "Finish chapter 3" {
		t.Errorf("EditValue() = %q", got)
	}

	shown, _ = title.Set("   ")
	if shown != DefaultTitle {
		t.Errorf("blank Set() = %q", shown)
	}
	if raw, _ := store.Raw(storage.KeyMainFocus); raw != DefaultTitle {
		t.Errorf("stored = %q", raw)
	}
}
