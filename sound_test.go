package main

import (
	"encoding/binary"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTonesBufferLength(t *testing.T) {
	sampleRate := 44100
	buffer := renderTones([]tone{{440, 100 * time.Millisecond, 0.3}}, sampleRate, 1)
	// 100ms of stereo int16 samples.
	assert.Len(t, buffer, 4410*4)
}

func TestRenderTonesSilentAtZeroFrequency(t *testing.T) {
	buffer := renderTones([]tone{{0, 50 * time.Millisecond, 0.3}}, 44100, 1)
	for _, b := range buffer {
		require.Zero(t, b)
	}
}

func TestEveryEventHasTones(t *testing.T) {
	events := []SoundEvent{
		SoundLock, SoundLine1, SoundLine2, SoundLine3, SoundLine4,
		SoundRotate, SoundMove, SoundDrop, SoundMenuMove, SoundMenuSelect,
		SoundGameOver,
	}
	for _, event := range events {
		assert.NotEmpty(t, tonesForEvent(event))
	}
}

func TestLoopReaderWraps(t *testing.T) {
	r := &loopReader{data: []byte{1, 2, 3}}
	out := make([]byte, 8)
	n, err := io.ReadFull(r, out)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []byte{1, 2, 3, 1, 2, 3, 1, 2}, out)
}

func TestVolumeReaderScalesSamples(t *testing.T) {
	pcm := make([]byte, 4)
	positive := int16(1000)
	negative := int16(-1000)
	binary.LittleEndian.PutUint16(pcm[0:], uint16(positive))
	binary.LittleEndian.PutUint16(pcm[2:], uint16(negative))
	vr := &volumeReader{
		reader:    &loopReader{data: pcm},
		getVolume: func() float64 { return 0.5 },
	}
	out := make([]byte, 4)
	_, err := io.ReadFull(vr, out)
	require.NoError(t, err)
	assert.Equal(t, int16(500), int16(binary.LittleEndian.Uint16(out[0:])))
	assert.Equal(t, int16(-500), int16(binary.LittleEndian.Uint16(out[2:])))
}

func TestMelodyIsNonTrivial(t *testing.T) {
	assert.Greater(t, len(melody), 20)
	var total time.Duration
	for _, tn := range melody {
		total += tn.duration
	}
	assert.Greater(t, total, 5*time.Second)
}
