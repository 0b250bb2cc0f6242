//go:build linux

package platform

import (
	"context"
	"os/exec"
	"strconv"
)

// resolvePlayer prefers ffplay, which handles every format and volume, and
// falls back to the PulseAudio and ALSA players for WAV files.
func resolvePlayer() (playerCommand, error) {
	if path, err := exec.LookPath("ffplay"); err == nil {
		return func(ctx context.Context, file string, volume float64) *exec.Cmd {
			return exec.CommandContext(ctx, path, "-nodisp", "-autoexit", "-loglevel", "quiet",
				"-volume", strconv.Itoa(int(volume*100)), file)
		}, nil
	}
	if path, err := exec.LookPath("paplay"); err == nil {
		return func(ctx context.Context, file string, volume float64) *exec.Cmd {
			return exec.CommandContext(ctx, path, "--volume="+strconv.Itoa(int(volume*65536)), file)
		}, nil
	}
	if path, err := exec.LookPath("aplay"); err == nil {
		return func(ctx context.Context, file string, _ float64) *exec.Cmd {
			return exec.CommandContext(ctx, path, "-q", file)
		}, nil
	}
	return nil, ErrNoPlayer
}
