package main

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"

	"MemoryMorse/config"
)

// resampleQuality is used when the tone sample's rate differs from the
// speaker's.
const resampleQuality = 4

// beepTone keeps one endless tone playing on the speaker and gates it with
// the beam.
type beepTone struct {
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

// newBeepTone initializes the speaker and starts the gated tone paused.
func newBeepTone(content fs.FS, cfg config.AudioConfig) (*beepTone, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initialize speaker: %w", err)
	}

	src, err := toneSource(content, cfg, sr)
	if err != nil {
		return nil, err
	}

	t := &beepTone{ctrl: &beep.Ctrl{Streamer: src, Paused: true}}
	t.volume = &effects.Volume{Streamer: t.ctrl, Base: 2}
	t.setVolume(cfg.Volume)
	speaker.Play(t.volume)
	return t, nil
}

// toneSource returns a sine at cfg.ToneHz, or the looped cfg.Sample when one
// is configured.
func toneSource(content fs.FS, cfg config.AudioConfig, sr beep.SampleRate) (beep.Streamer, error) {
	if cfg.Sample == "" {
		return generators.SineTone(sr, cfg.ToneHz)
	}

	data, err := content.Open(cfg.Sample)
	if err != nil {
		return nil, fmt.Errorf("open tone sample %s: %w", cfg.Sample, err)
	}
	streamer, format, err := vorbis.Decode(data)
	if err != nil {
		data.Close()
		return nil, fmt.Errorf("decode tone sample %s: %w", cfg.Sample, err)
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	streamer.Close()

	loop := beep.Loop(-1, buffer.Streamer(0, buffer.Len()))
	if format.SampleRate == sr {
		return loop, nil
	}
	return beep.Resample(resampleQuality, format.SampleRate, sr, loop), nil
}

// SetTone implements lighthouse.TonePlayer.
func (t *beepTone) SetTone(on bool) {
	speaker.Lock()
	t.ctrl.Paused = !on
	speaker.Unlock()
}

// SetVolume maps 0-100 onto the base-2 gain: 100 is unity, each 25 below
// halves the amplitude and 0 is silent.
func (t *beepTone) SetVolume(volume int) {
	speaker.Lock()
	t.setVolume(volume)
	speaker.Unlock()
}

func (t *beepTone) setVolume(volume int) {
	volume = min(max(volume, 0), 100)
	t.volume.Volume = float64(volume-100) / 25
	t.volume.Silent = volume == 0
}

// Close stops playback.
func (t *beepTone) Close() {
	speaker.Clear()
}
