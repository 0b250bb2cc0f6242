package dashboard

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"focushub/internal/core/media"

	"fyne.io/fyne/v2"
	fynestorage "fyne.io/fyne/v2/storage"
)

// maxRemoteBytes caps downloaded GIF backgrounds.
const maxRemoteBytes = 16 << 20

var errRemoteTooLarge = errors.New("remote media too large")

// fetchMedia returns the bytes behind a data URL or an http(s) location.
func fetchMedia(location string) ([]byte, error) {
	if strings.HasPrefix(location, "data:") {
		_, data, err := media.DecodeDataURL(location)
		return data, err
	}

	uri, err := fynestorage.ParseURI(location)
	if err != nil {
		return nil, fmt.Errorf("parse media uri: %w", err)
	}
	reader, err := fynestorage.Reader(uri)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", location, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxRemoteBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	if len(data) > maxRemoteBytes {
		return nil, fmt.Errorf("read %s: %w", location, errRemoteTooLarge)
	}
	return data, nil
}

// imageResource wraps a stored background image for a canvas.Image.
func imageResource(dataURL string) (fyne.Resource, error) {
	mediaType, data, err := media.DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, fmt.Errorf("background %s: %w", mediaType, media.ErrUnsupportedFile)
	}
	return fyne.NewStaticResource("background"+media.Clip{MediaType: mediaType}.Ext(), data), nil
}
