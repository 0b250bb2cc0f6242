//go:build windows

package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Windows Media Player's COM object plays every format the desktop can.
const wmpScript = `$p = New-Object -ComObject WMPlayer.OCX; $p.settings.volume = %d; $p.URL = '%s'; $p.controls.play(); Start-Sleep -Milliseconds 300; while ($p.playState -ne 1) { Start-Sleep -Milliseconds 200 }`

func resolvePlayer() (playerCommand, error) {
	path, err := exec.LookPath("powershell")
	if err != nil {
		return nil, ErrNoPlayer
	}
	return func(ctx context.Context, file string, volume float64) *exec.Cmd {
		script := fmt.Sprintf(wmpScript, int(volume*100), strings.ReplaceAll(file, "'", "''"))
		return exec.CommandContext(ctx, path, "-NoProfile", "-NonInteractive", "-Command", script)
	}, nil
}
