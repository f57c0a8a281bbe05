package alarm

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const (
	toneRate      beep.SampleRate = 44100
	toneFrequency                 = 880.0
	toneBeeps                     = 3
	playTimeout                   = 30 * time.Second
)

var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
)

// Player plays File, or a generated tone when File is empty.
type Player struct {
	File   string
	Volume float64
}

func (p *Player) Play() error {
	streamer, format, closeFn, err := p.open()
	if err != nil {
		return err
	}
	defer closeFn()

	speakerOnce.Do(func() {
		speakerRate = format.SampleRate
		speakerErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return fmt.Errorf("init speaker: %w", speakerErr)
	}

	var s beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		s = beep.Resample(4, format.SampleRate, speakerRate, s)
	}
	s = &effects.Volume{Streamer: s, Base: 2, Volume: p.Volume}

	done := make(chan struct{})
	speaker.Play(beep.Seq(s, beep.Callback(func() { close(done) })))

	select {
	case <-done:
		return nil
	case <-time.After(playTimeout):
		speaker.Clear()
		return fmt.Errorf("play alarm: timed out after %s", playTimeout)
	}
}

func (p *Player) open() (beep.Streamer, beep.Format, func(), error) {
	if p.File == "" {
		format := beep.Format{SampleRate: toneRate, NumChannels: 2, Precision: 2}
		return Tone(toneRate, toneFrequency, toneBeeps), format, func() {}, nil
	}

	f, err := os.Open(p.File)
	if err != nil {
		return nil, beep.Format{}, nil, fmt.Errorf("open alarm file: %w", err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(p.File)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("unsupported alarm file %s", p.File)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("decode alarm file: %w", err)
	}
	return stream, format, func() { stream.Close() }, nil
}

// Tone generates beeps short sine beeps separated by silence.
func Tone(rate beep.SampleRate, freq float64, beeps int) beep.Streamer {
	var parts []beep.Streamer
	for i := 0; i < beeps; i++ {
		parts = append(parts,
			beep.Take(rate.N(250*time.Millisecond), sine(rate, freq)),
			beep.Silence(rate.N(150*time.Millisecond)),
		)
	}
	return beep.Seq(parts...)
}

func sine(rate beep.SampleRate, freq float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(rate)
	var phase float64
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := 0.3 * math.Sin(phase)
			samples[i][0] = v
			samples[i][1] = v
			phase += step
		}
		return len(samples), true
	})
}
