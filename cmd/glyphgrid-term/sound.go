package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// sound mixes short one-shot effects into a single speaker stream. A nil
// *sound is silent.
type sound struct {
	mixer *beep.Mixer
}

func newSound() (*sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return nil, err
	}
	snd := &sound{mixer: &beep.Mixer{}}
	speaker.Play(snd.mixer)
	return snd, nil
}

// Bump plays a short low thud.
func (snd *sound) Bump() {
	if snd == nil {
		return
	}
	speaker.Lock()
	snd.mixer.Add(beep.Take(sampleRate.N(time.Millisecond*80), newThud(sampleRate, 90)))
	speaker.Unlock()
}

func (snd *sound) Close() {
	if snd == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}

// thud is a decaying sine.
type thud struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newThud(sr beep.SampleRate, freq float64) *thud {
	return &thud{sr: sr, freq: freq}
}

func (g *thud) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t) * math.Exp(-t*40)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *thud) Err() error {
	return nil
}
