//go:build darwin

package platform

import (
	"context"
	"os/exec"
	"strconv"
)

func resolvePlayer() (playerCommand, error) {
	path, err := exec.LookPath("afplay")
	if err != nil {
		return nil, ErrNoPlayer
	}
	return func(ctx context.Context, file string, volume float64) *exec.Cmd {
		return exec.CommandContext(ctx, path, "-v", strconv.FormatFloat(volume, 'f', 2, 64), file)
	}, nil
}
