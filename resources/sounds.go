package resources

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"
	"sync"
)

const sampleRate = 22050

// Built-in ambient loops.
const (
	SoundRain       = "rain"
	SoundWhiteNoise = "white-noise"
	SoundBrownNoise = "brown-noise"
)

var soundCache sync.Map

// Chime returns the timer expiry sound as a WAV file.
func Chime() []byte {
	return cached("chime", func() []int16 {
		const seconds = 1.4
		samples := make([]int16, int(seconds*sampleRate))
		for i := range samples {
			t := float64(i) / sampleRate
			envelope := math.Exp(-3.2 * t)
			tone := 0.6*math.Sin(2*math.Pi*880*t) + 0.3*math.Sin(2*math.Pi*1320*t) + 0.1*math.Sin(2*math.Pi*1760*t)
			samples[i] = int16(tone * envelope * 0.8 * math.MaxInt16)
		}
		return samples
	})
}

// Ambient returns a loopable WAV file for a built-in sound. ok is false for
// unknown names.
func Ambient(name string) ([]byte, bool) {
	switch name {
	case SoundWhiteNoise:
		return cached(name, whiteNoise), true
	case SoundBrownNoise:
		return cached(name, brownNoise), true
	case SoundRain:
		return cached(name, rain), true
	default:
		return nil, false
	}
}

func cached(name string, synth func() []int16) []byte {
	if data, ok := soundCache.Load(name); ok {
		return data.([]byte)
	}
	data := encodeWAV(synth())
	soundCache.Store(name, data)
	return data
}

const loopSeconds = 8

func whiteNoise() []int16 {
	random := rand.New(rand.NewSource(1))
	samples := make([]int16, loopSeconds*sampleRate)
	for i := range samples {
		samples[i] = int16((random.Float64()*2 - 1) * 0.25 * math.MaxInt16)
	}
	return samples
}

func brownNoise() []int16 {
	random := rand.New(rand.NewSource(2))
	samples := make([]int16, loopSeconds*sampleRate)
	last := 0.0
	for i := range samples {
		last = (last + 0.02*(random.Float64()*2-1)) / 1.02
		samples[i] = int16(clamp(last*3.5) * 0.8 * math.MaxInt16)
	}
	return crossfade(samples)
}

// rain is low-passed noise with sparse droplets on top.
func rain() []int16 {
	random := rand.New(rand.NewSource(3))
	samples := make([]int16, loopSeconds*sampleRate)
	smoothed := 0.0
	drop := 0.0
	for i := range samples {
		smoothed += 0.35 * ((random.Float64()*2 - 1) - smoothed)
		if random.Float64() < 0.0008 {
			drop = 0.5 + 0.5*random.Float64()
		}
		drop *= 0.995
		value := 0.45*smoothed + drop*(random.Float64()*2-1)*0.4
		samples[i] = int16(clamp(value) * 0.7 * math.MaxInt16)
	}
	return crossfade(samples)
}

// crossfade blends the tail into the head so the loop point does not click.
func crossfade(samples []int16) []int16 {
	fade := sampleRate / 10
	if len(samples) < 2*fade {
		return samples
	}
	tail := len(samples) - fade
	for i := 0; i < fade; i++ {
		weight := float64(i) / float64(fade)
		head := float64(samples[i])
		end := float64(samples[tail+i])
		samples[i] = int16(head*weight + end*(1-weight))
	}
	return samples[:tail]
}

func clamp(value float64) float64 {
	return math.Max(-1, math.Min(1, value))
}

// encodeWAV writes 16-bit mono PCM.
func encodeWAV(samples []int16) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := len(samples) * 2
	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*channels*bitsPerSample/8))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels*bitsPerSample/8))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}
