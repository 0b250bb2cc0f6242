package notify

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"focushub/internal/storage"
)

type fakeSender struct {
	sent     []string
	decision Permission
	asked    int
}

func (sender *fakeSender) Send(title, body string) error {
	sender.sent = append(sender.sent, title+"|"+body)
	return nil
}

func (sender *fakeSender) RequestPermission(context.Context) (Permission, error) {
	sender.asked++
	return sender.decision, nil
}

func TestGateway_NotifyRequiresPermission(t *testing.T) {
	sender := &fakeSender{decision: PermissionGranted}
	gateway := NewGateway(sender)

	if err := gateway.Notify("Time's Up!", "Time for a break!"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("notification sent before permission was granted")
	}

	permission, err := gateway.RequestPermission(context.Background())
	if err != nil || permission != PermissionGranted {
		t.Fatalf("RequestPermission() = %v, %v", permission, err)
	}
	if err := gateway.Notify("Time's Up!", "Time for a break!"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent = %v", sender.sent)
	}
}

func TestGateway_PermissionAskedOnce(t *testing.T) {
	sender := &fakeSender{decision: PermissionDenied}
	gateway := NewGateway(sender)

	for i := 0; i < 3; i++ {
		if permission, _ := gateway.RequestPermission(context.Background()); permission != PermissionDenied {
			t.Fatalf("permission = %v", permission)
		}
	}
	if sender.asked != 1 {
		t.Errorf("asked = %d, want 1", sender.asked)
	}
}

func TestGateway_NoSender(t *testing.T) {
	gateway := NewGateway(nil)
	permission, err := gateway.RequestPermission(context.Background())
	if !errors.Is(err, ErrNotificationsUnsupported) {
		t.Errorf("err = %v", err)
	}
	if permission != PermissionDenied {
		t.Errorf("permission = %v", permission)
	}
}

func TestSettings_EnableFollowsPermission(t *testing.T) {
	tests := []struct {
		name     string
		decision Permission
		want     bool
		stored   string
	}{
		{"granted", PermissionGranted, true, "true"},
		{"denied", PermissionDenied, false, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewStore(storage.NewMemoryBackend(), log.New(io.Discard, "", 0))
			settings := NewSettings(store, NewGateway(&fakeSender{decision: tt.decision}))

			got, err := settings.SetEnabled(context.Background(), true)
			if err != nil {
				t.Fatalf("SetEnabled() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SetEnabled() = %v, want %v", got, tt.want)
			}
			if raw, _ := store.Raw(storage.KeyNotificationsEnabled); raw != tt.stored {
				t.Errorf("stored = %q, want %q", raw, tt.stored)
			}
			if settings.Effective() != tt.want {
				t.Errorf("Effective() = %v", settings.Effective())
			}
		})
	}
}

func TestSettings_StoredFlagWithoutPermission(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend(), log.New(io.Discard, "", 0))
	if err := store.SetString(storage.KeyNotificationsEnabled, "true"); err != nil {
		t.Fatal(err)
	}
	settings := NewSettings(store, NewGateway(&fakeSender{}))

	if !settings.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = false, want stored true")
	}
	if settings.Effective() {
		t.Error("Effective() = true without permission")
	}
}
