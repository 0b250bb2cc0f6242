// Package ambient manages the looping background sounds and the one-shot
// audio warm-up shared with the timer.
package ambient

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"focushub/internal/core/media"
	"focushub/internal/storage"
	"focushub/resources"
)

// ErrUnknownSound reports a sound ID that is neither built in nor uploaded.
var ErrUnknownSound = errors.New("unknown ambient sound")

const (
	customPrefix      = "ambient-custom-"
	deleteSoundFormat = "Are you sure you want to delete the sound \"%s\"?"
	builtinPrefix     = "ambient-"
)

var builtins = []Sound{
	{ID: builtinPrefix + resources.SoundRain, Name: "Rain"},
	{ID: builtinPrefix + resources.SoundWhiteNoise, Name: "White Noise"},
	{ID: builtinPrefix + resources.SoundBrownNoise, Name: "Brown Noise"},
}

// Player loops one clip at a time.
type Player interface {
	Warm() error
	Loop(clip media.Clip, volume float64) error
	Stop() error
}

// Confirmer asks the user before destructive changes.
type Confirmer interface {
	Ask(message string, onConfirm func())
}

// Mixer tracks the playing ambient sound, its volume and the uploaded
// sounds. At most one sound plays at a time.
type Mixer struct {
	mu        sync.Mutex
	store     *storage.Store
	player    Player
	confirmer Confirmer
	logger    *log.Logger
	now       func() time.Time

	current  string
	volume   Volume
	unlocked bool

	listeners []func()
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithLogger sets the logger for playback and persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(mixer *Mixer) {
		mixer.logger = logger
	}
}

// WithClock overrides the clock used to mint custom sound IDs.
func WithClock(now func() time.Time) Option {
	return func(mixer *Mixer) {
		mixer.now = now
	}
}

// NewMixer creates a mixer. player may be nil, in which case selections are
// tracked and persisted but nothing is heard.
func NewMixer(store *storage.Store, player Player, confirmer Confirmer, options ...Option) *Mixer {
	mixer := &Mixer{
		store:     store,
		player:    player,
		confirmer: confirmer,
		logger:    log.Default(),
		now:       time.Now,
		volume:    DefaultVolume,
	}
	for _, option := range options {
		option(mixer)
	}
	return mixer
}

// Builtins lists the bundled sounds.
func Builtins() []Sound {
	return append([]Sound(nil), builtins...)
}

// Sounds lists built-in sounds followed by uploaded ones.
func (mixer *Mixer) Sounds() []Sound {
	sounds := Builtins()
	for _, custom := range mixer.CustomSounds() {
		sounds = append(sounds, Sound{ID: custom.ID, Name: custom.Name, Custom: true})
	}
	return sounds
}

// CustomSounds returns the uploaded sounds in upload order.
func (mixer *Mixer) CustomSounds() []CustomSound {
	return storage.Get(mixer.store, storage.KeyCustomSounds, []CustomSound(nil))
}

// Current returns the playing sound ID.
func (mixer *Mixer) Current() (string, bool) {
	mixer.mu.Lock()
	defer mixer.mu.Unlock()
	return mixer.current, mixer.current != ""
}

// Volume returns the ambient volume.
func (mixer *Mixer) Volume() float64 {
	mixer.mu.Lock()
	defer mixer.mu.Unlock()
	return float64(mixer.volume)
}

// Unlock warms the audio output on the first user gesture. Later calls do
// nothing, even if warming failed.
func (mixer *Mixer) Unlock() {
	mixer.mu.Lock()
	if mixer.unlocked {
		mixer.mu.Unlock()
		return
	}
	mixer.unlocked = true
	mixer.mu.Unlock()

	if mixer.player == nil {
		return
	}
	if err := mixer.player.Warm(); err != nil {
		mixer.logger.Printf("unlock audio: %v", err)
		return
	}
	mixer.logger.Printf("audio unlocked")
}

// Toggle stops id if it is playing, otherwise switches to it.
func (mixer *Mixer) Toggle(id string) error {
	mixer.Unlock()

	clip, err := mixer.clip(id)
	if err != nil {
		return err
	}

	mixer.mu.Lock()
	if mixer.current == id {
		mixer.current = ""
		mixer.mu.Unlock()
		mixer.stopPlayer()
	} else {
		mixer.current = id
		volume := float64(mixer.volume)
		mixer.mu.Unlock()
		mixer.play(clip, volume)
	}

	mixer.saveState()
	mixer.changed()
	return nil
}

// Stop silences the ambient sound.
func (mixer *Mixer) Stop() {
	mixer.mu.Lock()
	playing := mixer.current != ""
	mixer.current = ""
	mixer.mu.Unlock()
	if !playing {
		return
	}
	mixer.stopPlayer()
	mixer.saveState()
	mixer.changed()
}

// SetVolume changes the volume of the playing and future sounds.
func (mixer *Mixer) SetVolume(level float64) {
	mixer.mu.Lock()
	mixer.volume = Volume(level).Clamp()
	current := mixer.current
	volume := float64(mixer.volume)
	mixer.mu.Unlock()

	if current != "" {
		if clip, err := mixer.clip(current); err == nil {
			mixer.play(clip, volume)
		}
	}
	mixer.saveState()
	mixer.changed()
}

// Restore applies the persisted volume and resumes the persisted sound.
func (mixer *Mixer) Restore() {
	state := State{Volume: DefaultVolume}
	if !storage.Decode(mixer.store, storage.KeyAmbientState, &state) {
		return
	}
	volume := state.Volume.Clamp()
	if volume == 0 {
		volume = DefaultVolume
	}

	mixer.mu.Lock()
	mixer.volume = volume
	mixer.current = ""
	mixer.mu.Unlock()

	if state.ActiveSound != nil && *state.ActiveSound != "" {
		if err := mixer.Toggle(*state.ActiveSound); err != nil {
			mixer.logger.Printf("restore ambient sound: %v", err)
		}
		return
	}
	mixer.changed()
}

// AddCustomSound uploads an audio file.
func (mixer *Mixer) AddCustomSound(path string) (CustomSound, error) {
	file, err := media.ReadFile(path, media.Prefix("audio/"))
	if err != nil {
		return CustomSound{}, fmt.Errorf("add sound: %w", err)
	}

	sounds := mixer.CustomSounds()
	id := customPrefix + strconv.FormatInt(mixer.now().UnixMilli(), 10)
	for taken(sounds, id) {
		id += "-1"
	}
	sound := CustomSound{ID: id, Name: file.BaseName(), Data: file.DataURL()}

	if err := storage.Set(mixer.store, storage.KeyCustomSounds, append(sounds, sound)); err != nil {
		return CustomSound{}, fmt.Errorf("add sound: %w", err)
	}
	mixer.changed()
	return sound, nil
}

// DeleteCustomSound removes an uploaded sound after confirmation.
func (mixer *Mixer) DeleteCustomSound(id string) error {
	for _, sound := range mixer.CustomSounds() {
		if sound.ID == id {
			mixer.confirmer.Ask(fmt.Sprintf(deleteSoundFormat, sound.Name), func() {
				mixer.DeleteCustomSoundNow(id)
			})
			return nil
		}
	}
	return fmt.Errorf("delete sound %s: %w", id, ErrUnknownSound)
}

// DeleteCustomSoundNow removes an uploaded sound without asking. Deleting the
// playing sound stops it.
func (mixer *Mixer) DeleteCustomSoundNow(id string) {
	sounds := mixer.CustomSounds()
	kept := make([]CustomSound, 0, len(sounds))
	for _, sound := range sounds {
		if sound.ID != id {
			kept = append(kept, sound)
		}
	}
	if err := storage.Set(mixer.store, storage.KeyCustomSounds, kept); err != nil {
		mixer.logger.Printf("delete sound %s: %v", id, err)
	}

	mixer.mu.Lock()
	wasPlaying := mixer.current == id
	if wasPlaying {
		mixer.current = ""
	}
	mixer.mu.Unlock()

	if wasPlaying {
		mixer.stopPlayer()
		mixer.saveState()
	}
	mixer.changed()
}

// OnChange registers a refresh callback.
func (mixer *Mixer) OnChange(listener func()) {
	mixer.mu.Lock()
	mixer.listeners = append(mixer.listeners, listener)
	mixer.mu.Unlock()
}

func (mixer *Mixer) clip(id string) (media.Clip, error) {
	for _, sound := range builtins {
		if sound.ID == id {
			data, _ := resources.Ambient(id[len(builtinPrefix):])
			return media.Clip{ID: id, MediaType: "audio/wav", Data: data}, nil
		}
	}
	for _, sound := range mixer.CustomSounds() {
		if sound.ID == id {
			clip, err := media.ClipFromDataURL(id, sound.Data)
			if err != nil {
				return media.Clip{}, fmt.Errorf("load sound %s: %w", id, err)
			}
			return clip, nil
		}
	}
	return media.Clip{}, fmt.Errorf("load sound %s: %w", id, ErrUnknownSound)
}

// play starts a clip. Playback failures are logged and otherwise ignored so
// the selection still sticks.
func (mixer *Mixer) play(clip media.Clip, volume float64) {
	if mixer.player == nil {
		return
	}
	if err := mixer.player.Loop(clip, volume); err != nil {
		mixer.logger.Printf("play %s: %v", clip.ID, err)
	}
}

func (mixer *Mixer) stopPlayer() {
	if mixer.player == nil {
		return
	}
	if err := mixer.player.Stop(); err != nil {
		mixer.logger.Printf("stop ambient sound: %v", err)
	}
}

func (mixer *Mixer) saveState() {
	mixer.mu.Lock()
	state := State{Volume: mixer.volume}
	if mixer.current != "" {
		current := mixer.current
		state.ActiveSound = &current
	}
	mixer.mu.Unlock()

	if err := storage.Set(mixer.store, storage.KeyAmbientState, state); err != nil {
		mixer.logger.Printf("save ambient state: %v", err)
	}
}

func (mixer *Mixer) changed() {
	mixer.mu.Lock()
	listeners := append([]func(){}, mixer.listeners...)
	mixer.mu.Unlock()
	for _, listener := range listeners {
		listener()
	}
}

func taken(sounds []CustomSound, id string) bool {
	for _, sound := range sounds {
		if sound.ID == id {
			return true
		}
	}
	return false
}
