// Package music validates and stores the music player link.
package music

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"focushub/internal/storage"
)

// ErrInvalidLink rejects links that are not music player URLs.
var ErrInvalidLink = errors.New("invalid music link")

const (
	playerHost  = "open.spotify.com"
	embedPrefix = "https://" + playerHost + "/embed"
)

// EmbedURL converts a player link into its embeddable form. The query string
// is dropped.
func EmbedURL(link string) (string, error) {
	link = strings.TrimSpace(link)
	if !strings.Contains(link, playerHost) {
		return "", fmt.Errorf("%q: %w", link, ErrInvalidLink)
	}
	parsed, err := url.Parse(link)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%q is malformed: %w", link, ErrInvalidLink)
	}
	return embedPrefix + parsed.EscapedPath(), nil
}

// Player owns the stored embed URL.
type Player struct {
	store *storage.Store
}

// NewPlayer binds the music link to a store.
func NewPlayer(store *storage.Store) *Player {
	return &Player{store: store}
}

// EmbedURL returns the stored embed URL.
func (player *Player) EmbedURL() (string, bool) {
	value := player.store.GetString(storage.KeySpotifyEmbedURL, "")
	return value, value != ""
}

// Link returns the shareable link for the stored embed.
func (player *Player) Link() (string, bool) {
	embed, ok := player.EmbedURL()
	if !ok {
		return "", false
	}
	return strings.Replace(embed, "/embed", "", 1), true
}

// SetLink stores a new player link. Links to other sites are rejected and
// leave the stored embed alone; malformed player links clear it.
func (player *Player) SetLink(link string) (string, error) {
	embed, err := EmbedURL(link)
	if err != nil {
		if strings.Contains(link, playerHost) {
			if removeErr := player.store.Remove(storage.KeySpotifyEmbedURL); removeErr != nil {
				return "", errors.Join(err, removeErr)
			}
		}
		return "", err
	}
	if err := player.store.SetString(storage.KeySpotifyEmbedURL, embed); err != nil {
		return "", err
	}
	return embed, nil
}

// Clear removes the stored embed.
func (player *Player) Clear() error {
	return player.store.Remove(storage.KeySpotifyEmbedURL)
}
