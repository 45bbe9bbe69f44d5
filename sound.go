package main

import (
	"bytes"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

type SoundEvent int

const (
	SoundLock SoundEvent = iota
	SoundLine1
	SoundLine2
	SoundLine3
	SoundLine4
	SoundRotate
	SoundMove
	SoundDrop
	SoundMenuMove
	SoundMenuSelect
	SoundGameOver
)

// SoundEngine plays short synthesized tone sequences for game events.
type SoundEngine struct {
	mu         sync.RWMutex
	ctx        *oto.Context
	sampleRate int
	enabled    bool
	volume     float64
}

func NewSoundEngine(ctx *oto.Context, sampleRate int, enabled bool) *SoundEngine {
	if sampleRate <= 0 {
		sampleRate = audioSampleRate
	}
	return &SoundEngine{
		ctx:        ctx,
		sampleRate: sampleRate,
		enabled:    enabled && ctx != nil,
		volume:     0.7,
	}
}

func (s *SoundEngine) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled && s.ctx != nil
	s.mu.Unlock()
}

func (s *SoundEngine) SetVolume(volume float64) {
	s.mu.Lock()
	s.volume = clampVolume(volume)
	s.mu.Unlock()
}

func (s *SoundEngine) Play(event SoundEvent) {
	s.mu.RLock()
	ctx := s.ctx
	enabled := s.enabled
	volume := s.volume
	sampleRate := s.sampleRate
	s.mu.RUnlock()
	if !enabled || ctx == nil {
		return
	}
	sequence := tonesForEvent(event)
	if len(sequence) == 0 {
		return
	}
	go func() {
		buffer := renderTones(sequence, sampleRate, volume)
		player := ctx.NewPlayer(bytes.NewReader(buffer))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		_ = player.Close()
	}()
}

type tone struct {
	frequency float64
	duration  time.Duration
	volume    float64
}

func tonesForEvent(event SoundEvent) []tone {
	switch event {
	case SoundLock:
		return []tone{{220, 70 * time.Millisecond, 0.3}}
	case SoundLine1:
		return []tone{{440, 90 * time.Millisecond, 0.3}}
	case SoundLine2:
		return []tone{
			{440, 70 * time.Millisecond, 0.3},
			{660, 90 * time.Millisecond, 0.3},
		}
	case SoundLine3:
		return []tone{
			{440, 70 * time.Millisecond, 0.3},
			{660, 70 * time.Millisecond, 0.3},
			{880, 90 * time.Millisecond, 0.3},
		}
	case SoundLine4:
		return []tone{
			{660, 80 * time.Millisecond, 0.3},
			{880, 80 * time.Millisecond, 0.3},
			{990, 120 * time.Millisecond, 0.3},
		}
	case SoundRotate:
		return []tone{{520, 40 * time.Millisecond, 0.25}}
	case SoundMove:
		return []tone{{380, 25 * time.Millisecond, 0.18}}
	case SoundDrop:
		return []tone{{240, 55 * time.Millisecond, 0.22}}
	case SoundMenuMove:
		return []tone{{260, 24 * time.Millisecond, 0.16}}
	case SoundMenuSelect:
		return []tone{{520, 70 * time.Millisecond, 0.2}}
	case SoundGameOver:
		return []tone{
			{220, 140 * time.Millisecond, 0.28},
			{180, 200 * time.Millisecond, 0.28},
		}
	default:
		return nil
	}
}

// renderTones produces interleaved stereo signed 16-bit little-endian PCM
// for a tone sequence, with short gaps between tones and a fade envelope
// against clicks.
func renderTones(sequence []tone, sampleRate int, masterVolume float64) []byte {
	const bytesPerSample = 4
	gapSamples := sampleRate / 100
	totalSamples := 0
	for i, spec := range sequence {
		totalSamples += int(float64(sampleRate) * spec.duration.Seconds())
		if i < len(sequence)-1 {
			totalSamples += gapSamples
		}
	}
	buffer := make([]byte, totalSamples*bytesPerSample)
	index := 0
	for i, spec := range sequence {
		volume := spec.volume
		if volume <= 0 {
			volume = 0.3
		}
		volume *= clampVolume(masterVolume)
		samples := int(float64(sampleRate) * spec.duration.Seconds())
		renderSine(buffer, index, spec.frequency, samples, sampleRate, volume)
		index += samples * bytesPerSample
		if i < len(sequence)-1 {
			index += gapSamples * bytesPerSample
		}
	}
	return buffer
}

func renderSine(buffer []byte, start int, frequency float64, samples, sampleRate int, volume float64) {
	const maxInt16 = 1<<15 - 1
	fadeSamples := sampleRate * 3 / 1000
	for i := 0; i < samples; i++ {
		env := 1.0
		if fadeSamples > 0 {
			if i < fadeSamples {
				env = float64(i) / float64(fadeSamples)
			} else if i > samples-fadeSamples {
				env = float64(samples-i) / float64(fadeSamples)
			}
			if env < 0 {
				env = 0
			}
		}
		sample := math.Sin(2 * math.Pi * frequency * float64(i) / float64(sampleRate))
		value := int16(sample * volume * env * maxInt16)
		buffer[start+i*4] = byte(value)
		buffer[start+i*4+1] = byte(value >> 8)
		buffer[start+i*4+2] = byte(value)
		buffer[start+i*4+3] = byte(value >> 8)
	}
}

func clampVolume(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
