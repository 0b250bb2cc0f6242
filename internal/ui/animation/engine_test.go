package animation

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"sync"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		TypeInterval:  time.Millisecond,
		ToastDuration: 5 * time.Millisecond,
		MinFrameDelay: time.Millisecond,
	}
}

func TestTypewriter_RevealsRunes(t *testing.T) {
	engine := New(fastConfig())
	var mu sync.Mutex
	var seen []string
	finished := make(chan struct{})

	engine.Typewriter(context.Background(), "Fokus ✓", func(text string) {
		mu.Lock()
		seen = append(seen, text)
		mu.Unlock()
	}, func() { close(finished) })

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("typewriter did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"", "F", "Fo", "Fok", "Foku", "Fokus", "Fokus ", "Fokus ✓"}
	if len(seen) != len(want) {
		t.Fatalf("updates = %q, want %q", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("update %d = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestTypewriter_RestartCancelsPrevious(t *testing.T) {
	config := fastConfig()
	config.TypeInterval = 20 * time.Millisecond
	engine := New(config)

	firstFinished := make(chan struct{}, 1)
	engine.Typewriter(context.Background(), "a long first title", func(string) {}, func() {
		firstFinished <- struct{}{}
	})
	secondFinished := make(chan struct{})
	engine.Typewriter(context.Background(), "ok", func(string) {}, func() { close(secondFinished) })

	select {
	case <-secondFinished:
	case <-time.After(2 * time.Second):
		t.Fatal("second typewriter did not finish")
	}
	select {
	case <-firstFinished:
		t.Error("cancelled typewriter finished")
	default:
	}
}

func TestFlash_HidesAfterDuration(t *testing.T) {
	engine := New(fastConfig())
	shown := make(chan struct{}, 1)
	hidden := make(chan struct{})

	engine.Flash(context.Background(), func() { shown <- struct{}{} }, func() { close(hidden) })

	select {
	case <-hidden:
	case <-time.After(2 * time.Second):
		t.Fatal("toast never hidden")
	}
	if len(shown) != 1 {
		t.Error("show not called")
	}
}

func TestFlash_StopKeepsToastFromHiding(t *testing.T) {
	config := fastConfig()
	config.ToastDuration = time.Hour
	engine := New(config)
	hidden := false

	engine.Flash(context.Background(), func() {}, func() { hidden = true })
	engine.Stop()

	if hidden {
		t.Error("hide ran after Stop")
	}
}

func TestDecodeGIFAndPlay(t *testing.T) {
	palette := color.Palette{color.Black, color.White}
	animated := &gif.GIF{
		Image: []*image.Paletted{
			image.NewPaletted(image.Rect(0, 0, 2, 2), palette),
			image.NewPaletted(image.Rect(0, 0, 2, 2), palette),
		},
		Delay: []int{0, 5},
	}
	animated.Image[1].SetColorIndex(0, 0, 1)
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, animated); err != nil {
		t.Fatal(err)
	}

	frames, err := DecodeGIF(buf.Bytes(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("DecodeGIF() error = %v", err)
	}
	if len(frames.Images) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames.Images))
	}
	if frames.Delays[0] != 10*time.Millisecond || frames.Delays[1] != 50*time.Millisecond {
		t.Errorf("delays = %v", frames.Delays)
	}

	engine := New(fastConfig())
	updates := make(chan image.Image, 16)
	engine.Play(context.Background(), frames, func(img image.Image) {
		select {
		case updates <- img:
		default:
		}
	})
	deadline := time.After(2 * time.Second)
	for count := 0; count < 3; count++ {
		select {
		case <-updates:
		case <-deadline:
			t.Fatalf("only %d frames shown", count)
		}
	}
	engine.Stop()

	if _, err := DecodeGIF([]byte("not a gif"), time.Millisecond); err == nil {
		t.Error("DecodeGIF accepted garbage")
	}
}
