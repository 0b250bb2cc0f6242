package platform

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"focushub/internal/core/media"
	"focushub/resources"
)

// ErrNoPlayer indicates that no supported audio player is installed.
var ErrNoPlayer = errors.New("no audio player found")

// minLoopRun guards against a player that exits immediately, which would
// otherwise restart in a tight loop.
const minLoopRun = 250 * time.Millisecond

// playerCommand builds the command that plays file once at volume (0..1).
type playerCommand func(ctx context.Context, file string, volume float64) *exec.Cmd

// Audio plays the expiry chime and looping ambient clips through the
// platform's command-line player. Clips are written to the cache directory
// before playback.
type Audio struct {
	mu       sync.Mutex
	cacheDir string
	logger   *log.Logger
	resolve  func() (playerCommand, error)
	command  playerCommand
	chime    string
	warmed   bool

	loopCancel context.CancelFunc
	loopDone   chan struct{}
}

// NewAudio creates a player that caches clips under cacheDir.
func NewAudio(cacheDir string, logger *log.Logger) *Audio {
	if logger == nil {
		logger = log.Default()
	}
	return &Audio{
		cacheDir: cacheDir,
		logger:   logger,
		resolve:  resolvePlayer,
	}
}

// Warm locates the player and writes the chime to disk so the first
// notification starts without delay. It succeeds once; failures are retried
// on the next call.
func (audio *Audio) Warm() error {
	audio.mu.Lock()
	defer audio.mu.Unlock()
	return audio.warmLocked()
}

func (audio *Audio) warmLocked() error {
	if audio.warmed {
		return nil
	}
	command, err := audio.resolve()
	if err != nil {
		return fmt.Errorf("warm audio: %w", err)
	}
	chime, err := audio.writeClip(media.Clip{ID: "chime", MediaType: "audio/wav", Data: resources.Chime()})
	if err != nil {
		return fmt.Errorf("warm audio: %w", err)
	}
	audio.command = command
	audio.chime = chime
	audio.warmed = true
	return nil
}

// PlayNotification starts the chime and returns without waiting for it.
func (audio *Audio) PlayNotification() error {
	audio.mu.Lock()
	if err := audio.warmLocked(); err != nil {
		audio.mu.Unlock()
		return err
	}
	cmd := audio.command(context.Background(), audio.chime, 1)
	audio.mu.Unlock()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("play notification: %w", err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// Loop replaces the current ambient clip with clip, repeating it until Stop.
func (audio *Audio) Loop(clip media.Clip, volume float64) error {
	if err := audio.Stop(); err != nil {
		return err
	}

	audio.mu.Lock()
	defer audio.mu.Unlock()
	if err := audio.warmLocked(); err != nil {
		return err
	}
	file, err := audio.writeClip(clip)
	if err != nil {
		return fmt.Errorf("loop %s: %w", clip.ID, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	audio.loopCancel = cancel
	audio.loopDone = done
	go audio.runLoop(ctx, done, audio.command, clip.ID, file, volume)
	return nil
}

// Stop ends the ambient loop, if any, and waits for the player to exit.
func (audio *Audio) Stop() error {
	audio.mu.Lock()
	cancel, done := audio.loopCancel, audio.loopDone
	audio.loopCancel, audio.loopDone = nil, nil
	audio.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (audio *Audio) runLoop(ctx context.Context, done chan struct{}, command playerCommand, id, file string, volume float64) {
	defer close(done)
	for {
		started := time.Now()
		err := command(ctx, file, volume).Run()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			audio.logger.Printf("play %s: %v", id, err)
			return
		}
		if time.Since(started) < minLoopRun {
			audio.logger.Printf("play %s: player exited immediately, stopping loop", id)
			return
		}
	}
}

func (audio *Audio) writeClip(clip media.Clip) (string, error) {
	dir := filepath.Join(audio.cacheDir, "sounds")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create sound cache: %w", err)
	}
	path := filepath.Join(dir, clip.FileName())
	if info, err := os.Stat(path); err == nil && info.Size() == int64(len(clip.Data)) {
		return path, nil
	}
	if err := os.WriteFile(path, clip.Data, 0o644); err != nil {
		return "", fmt.Errorf("write sound cache: %w", err)
	}
	return path, nil
}
