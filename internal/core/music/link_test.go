package music

import (
	"errors"
	"io"
	"log"
	"testing"

	"focushub/internal/storage"
)

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		link    string
		want    string
		wantErr bool
	}{
		{"https://open.spotify.com/playlist/37i9dQZF1DX8Uebhn9wzrS?si=abc", "https://open.spotify.com/embed/playlist/37i9dQZF1DX8Uebhn9wzrS", false},
		{"  https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC ", "https://open.spotify.com/embed/track/4uLU6hMCjMI75M1A2tKUQC", false},
		{"https://www.youtube.com/watch?v=jfKfPfyJRdk", "", true},
		{"open.spotify.com/track/abc", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := EmbedURL(tt.link)
		if (err != nil) != tt.wantErr {
			t.Errorf("EmbedURL(%q) error = %v, wantErr %v", tt.link, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidLink) {
			t.Errorf("EmbedURL(%q) error = %v, want ErrInvalidLink", tt.link, err)
		}
		if got != tt.want {
			t.Errorf("EmbedURL(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}

func TestPlayer_SetLink(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryBackend(), log.New(io.Discard, "", 0))
	player := NewPlayer(store)

	if _, err := player.SetLink("https://open.spotify.com/album/1ATL5GLyefJaxhQzSPVrLX"); err != nil {
		t.Fatal(err)
	}
	if link, _ := player.Link(); link != "https://open.spotify.com/album/1ATL5GLyefJaxhQzSPVrLX" {
		t.Errorf("Link() = %q", link)
	}

	if _, err := player.SetLink("https://example.com/song"); !errors.Is(err, ErrInvalidLink) {
		t.Errorf("foreign link error = %v", err)
	}
	if _, ok := player.EmbedURL(); !ok {
		t.Error("foreign link cleared the stored embed")
	}

	if _, err := player.SetLink("open.spotify.com/track/abc"); !errors.Is(err, ErrInvalidLink) {
		t.Errorf("malformed link error = %v", err)
	}
	if _, ok := player.EmbedURL(); ok {
		t.Error("malformed link kept the stored embed")
	}
}
