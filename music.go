package main

import (
	"encoding/binary"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// MusicPlayer loops a synthesized background melody during play. The
// melody is rendered to PCM once and streamed through a looping reader.
type MusicPlayer struct {
	ctx        *oto.Context
	sampleRate int
	mu         sync.Mutex
	player     *oto.Player
	volume     float64
	pcm        []byte
}

func NewMusicPlayer(ctx *oto.Context, sampleRate int, volume float64) *MusicPlayer {
	if ctx == nil {
		return nil
	}
	if sampleRate <= 0 {
		sampleRate = audioSampleRate
	}
	return &MusicPlayer{
		ctx:        ctx,
		sampleRate: sampleRate,
		volume:     clampVolume(volume),
	}
}

func (m *MusicPlayer) SetVolume(volume float64) {
	m.mu.Lock()
	m.volume = clampVolume(volume)
	m.mu.Unlock()
}

func (m *MusicPlayer) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.player != nil {
		return
	}
	if m.pcm == nil {
		m.pcm = renderTones(melody, m.sampleRate, 1)
	}
	vr := &volumeReader{
		reader:    &loopReader{data: m.pcm},
		getVolume: m.volumeValue,
	}
	player := m.ctx.NewPlayer(vr)
	player.Play()
	m.player = player
}

func (m *MusicPlayer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.player != nil {
		_ = m.player.Close()
		m.player = nil
	}
}

func (m *MusicPlayer) volumeValue() float64 {
	m.mu.Lock()
	volume := m.volume
	m.mu.Unlock()
	return volume
}

// Korobeiniki lead line, one full phrase.
var melody = buildMelody([]note{
	{e5, 1}, {b4, 0.5}, {c5, 0.5}, {d5, 1}, {c5, 0.5}, {b4, 0.5},
	{a4, 1}, {a4, 0.5}, {c5, 0.5}, {e5, 1}, {d5, 0.5}, {c5, 0.5},
	{b4, 1.5}, {c5, 0.5}, {d5, 1}, {e5, 1},
	{c5, 1}, {a4, 1}, {a4, 2},
	{0, 0.5}, {d5, 1}, {f5, 0.5}, {a5, 1}, {g5, 0.5}, {f5, 0.5},
	{e5, 1.5}, {c5, 0.5}, {e5, 1}, {d5, 0.5}, {c5, 0.5},
	{b4, 1}, {b4, 0.5}, {c5, 0.5}, {d5, 1}, {e5, 1},
	{c5, 1}, {a4, 1}, {a4, 2},
})

const (
	a4 = 440.00
	b4 = 493.88
	c5 = 523.25
	d5 = 587.33
	e5 = 659.25
	f5 = 698.46
	g5 = 783.99
	a5 = 880.00
)

const beatDuration = 220 * time.Millisecond

type note struct {
	frequency float64
	beats     float64
}

func buildMelody(notes []note) []tone {
	tones := make([]tone, 0, len(notes))
	for _, n := range notes {
		// A zero frequency renders as silence, which covers rests.
		tones = append(tones, tone{
			frequency: n.frequency,
			duration:  time.Duration(n.beats * float64(beatDuration)),
			volume:    0.16,
		})
	}
	return tones
}

// loopReader replays its buffer forever.
type loopReader struct {
	data []byte
	pos  int
}

func (l *loopReader) Read(p []byte) (int, error) {
	if len(l.data) == 0 {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) {
		copied := copy(p[n:], l.data[l.pos:])
		n += copied
		l.pos += copied
		if l.pos >= len(l.data) {
			l.pos = 0
		}
	}
	return n, nil
}

// volumeReader scales signed 16-bit little-endian samples on the way to
// the player, so volume changes apply to already-rendered PCM.
type volumeReader struct {
	reader    io.Reader
	getVolume func() float64
}

func (v *volumeReader) Read(p []byte) (int, error) {
	n, err := v.reader.Read(p)
	volume := clampVolume(v.getVolume())
	if volume >= 0.999 {
		return n, err
	}
	for i := 0; i+1 < n; i += 2 {
		sample := int16(binary.LittleEndian.Uint16(p[i:]))
		scaled := int16(float64(sample) * volume)
		binary.LittleEndian.PutUint16(p[i:], uint16(scaled))
	}
	return n, err
}
