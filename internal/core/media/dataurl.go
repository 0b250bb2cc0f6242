// Package media converts user-picked files into data URLs so they can live in
// the preference store alongside everything else.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFile rejects files whose media type is not accepted.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ErrMalformedDataURL reports a stored value that is not a base64 data URL.
var ErrMalformedDataURL = errors.New("malformed data url")

var extensionTypes = map[string]string{
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".gif":  "image/gif",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
	".png":  "image/png",
	".wav":  "audio/wav",
	".webm": "audio/webm",
	".webp": "image/webp",
}

// Accept decides whether a media type is allowed.
type Accept func(mediaType string) bool

// Prefix accepts every media type under a top-level type such as "audio/".
func Prefix(prefix string) Accept {
	return func(mediaType string) bool {
		return strings.HasPrefix(mediaType, prefix)
	}
}

// Exactly accepts one media type.
func Exactly(want string) Accept {
	return func(mediaType string) bool {
		return mediaType == want
	}
}

// File is a file read into memory.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// BaseName returns the file name without its extension.
func (file File) BaseName() string {
	return strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
}

// DataURL encodes the file as a base64 data URL.
func (file File) DataURL() string {
	return "data:" + file.MediaType + ";base64," + base64.StdEncoding.EncodeToString(file.Data)
}

// ReadFile loads path and checks its media type against accept.
func ReadFile(path string, accept Accept) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", path, err)
	}
	file := File{
		Name:      filepath.Base(path),
		MediaType: DetectType(path, data),
		Data:      data,
	}
	if accept != nil && !accept(file.MediaType) {
		return File{}, fmt.Errorf("%s is %s: %w", file.Name, file.MediaType, ErrUnsupportedFile)
	}
	return file, nil
}

// DetectType guesses the media type from the extension first and the content
// second.
func DetectType(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mediaType, ok := extensionTypes[ext]; ok {
		return mediaType
	}
	if mediaType := mime.TypeByExtension(ext); mediaType != "" {
		return stripParams(mediaType)
	}
	return stripParams(http.DetectContentType(data))
}

// DecodeDataURL splits a base64 data URL into its media type and payload.
func DecodeDataURL(value string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(value, "data:")
	if !ok {
		return "", nil, ErrMalformedDataURL
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrMalformedDataURL
	}
	mediaType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, ErrMalformedDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return mediaType, data, nil
}

func stripParams(mediaType string) string {
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		return parsed
	}
	return mediaType
}
