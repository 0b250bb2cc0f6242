package media

import (
	"crypto/sha1"
	"encoding/hex"
)

var typeExtensions = map[string]string{
	"audio/aac":   ".aac",
	"audio/flac":  ".flac",
	"audio/mp4":   ".m4a",
	"audio/mpeg":  ".mp3",
	"audio/ogg":   ".ogg",
	"audio/wav":   ".wav",
	"audio/wave":  ".wav",
	"audio/x-wav": ".wav",
	"audio/webm":  ".webm",
	"image/gif":   ".gif",
	"image/jpeg":  ".jpg",
	"image/png":   ".png",
	"image/webp":  ".webp",
}

// Clip is an in-memory sound ready to hand to a player.
type Clip struct {
	ID        string
	MediaType string
	Data      []byte
}

// ClipFromDataURL decodes a stored data URL into a clip.
func ClipFromDataURL(id, value string) (Clip, error) {
	mediaType, data, err := DecodeDataURL(value)
	if err != nil {
		return Clip{}, err
	}
	return Clip{ID: id, MediaType: mediaType, Data: data}, nil
}

// Ext returns the file extension players expect for the clip's media type.
func (clip Clip) Ext() string {
	if ext, ok := typeExtensions[clip.MediaType]; ok {
		return ext
	}
	return ".bin"
}

// FileName returns a content-addressed file name for caching the clip.
func (clip Clip) FileName() string {
	sum := sha1.Sum(clip.Data)
	return hex.EncodeToString(sum[:8]) + clip.Ext()
}
