package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/vi-racer/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// oscillator generates a wave whose frequency moves from one value to another
type oscillator struct {
	from, to float64
	sweep    int  // Samples over which frequency moves, then holds at to
	exp      bool // Exponential rather than linear sweep
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, 0, duration, wave, rate, false)
}

// NewSweep creates an oscillator gliding from one frequency to another over sweep
func NewSweep(from, to float64, sweep, duration time.Duration, wave WaveType, rate beep.SampleRate, exponential bool) beep.Streamer {
	return &oscillator{
		from:     from,
		to:       to,
		sweep:    rate.N(sweep),
		exp:      exponential && from > 0 && to > 0,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) freq() float64 {
	if o.sweep <= 0 {
		return o.from
	}
	if o.position >= o.sweep {
		return o.to
	}
	t := float64(o.position) / float64(o.sweep)
	if o.exp {
		return o.from * math.Pow(o.to/o.from, t)
	}
	return o.from + (o.to-o.from)*t
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := waveAt(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq() / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// waveAt samples a unit wave at phase in [0, 1)
func waveAt(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// decay ramps gain exponentially from 1 down to floor after a linear attack
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
	floor    float64
}

// NewDecay creates an exponential decay envelope
func NewDecay(s beep.Streamer, duration, attack time.Duration, floor float64, rate beep.SampleRate) beep.Streamer {
	return &decay{
		streamer: s,
		attack:   rate.N(attack),
		total:    rate.N(duration),
		floor:    floor,
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if d.position >= d.total {
			return i, i > 0
		}

		var vol float64
		if d.position < d.attack {
			vol = float64(d.position) / float64(d.attack)
		} else {
			t := float64(d.position-d.attack) / float64(max(d.total-d.attack, 1))
			vol = math.Pow(d.floor, t)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// lowpass is a one-pole low-pass filter
type lowpass struct {
	streamer beep.Streamer
	alpha    float64
	y        [2]float64
}

// NewLowpass filters s above cutoff Hz
func NewLowpass(s beep.Streamer, cutoff float64, rate beep.SampleRate) beep.Streamer {
	return &lowpass{
		streamer: s,
		alpha:    1 - math.Exp(-2*math.Pi*cutoff/float64(rate)),
	}
}

func (l *lowpass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = l.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for ch := 0; ch < 2; ch++ {
			l.y[ch] += l.alpha * (samples[i][ch] - l.y[ch])
			samples[i][ch] = l.y[ch]
		}
	}
	return n, ok
}

func (l *lowpass) Err() error { return l.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is made silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// arpeggio mixes notes started at a fixed spacing
func arpeggio(freqs []float64, spacing time.Duration, note func(freq float64) beep.Streamer, rate beep.SampleRate) beep.Streamer {
	voices := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		voices[i] = beep.Seq(beep.Silence(rate.N(spacing*time.Duration(i))), note(f))
	}
	return &mix{voices: voices}
}

// sineNote is a pure tone of fixed length; frequencies above Nyquist fall back to the triangle oscillator
func sineNote(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return NewOscillator(freq, d, WaveTriangle, rate)
	}
	return beep.Take(rate.N(d), tone)
}

// mix sums voices until every one is drained
type mix struct {
	voices []beep.Streamer
	tmp    [][2]float64
}

func (m *mix) Stream(samples [][2]float64) (n int, ok bool) {
	if len(m.tmp) < len(samples) {
		m.tmp = make([][2]float64, len(samples))
	}
	for i := range samples {
		samples[i] = [2]float64{}
	}

	alive := m.voices[:0]
	for _, v := range m.voices {
		sn, sok := v.Stream(m.tmp[:len(samples)])
		for i := 0; i < sn; i++ {
			samples[i][0] += m.tmp[i][0]
			samples[i][1] += m.tmp[i][1]
		}
		n = max(n, sn)
		if sok {
			alive = append(alive, v)
		}
	}
	m.voices = alive
	return n, n > 0
}

func (m *mix) Err() error { return nil }

// CreateCountdownSound generates a rising blip for each countdown number
func CreateCountdownSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constants.CountdownSoundDuration

	osc := NewSweep(440, 880, 100*time.Millisecond, d, WaveSine, rate, true)
	return newVolume(NewDecay(osc, d, constants.CueAttack, 0.005, rate), cfg.CueVolumes[CueCountdown]*cfg.MasterVolume)
}

// CreateGoSound generates a bright square chirp on race start
func CreateGoSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constants.GoSoundDuration

	osc := NewSweep(880, 1760, 100*time.Millisecond, d, WaveSquare, rate, false)
	return newVolume(NewDecay(osc, d, constants.CueAttack, 0.005, rate), cfg.CueVolumes[CueGo]*cfg.MasterVolume)
}

// CreateCollisionSound generates a filtered noise burst
func CreateCollisionSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constants.CollisionSoundDuration

	noise := NewLowpass(NewOscillator(0, d, WaveNoise, rate), 800, rate)
	return newVolume(NewDecay(noise, d, constants.CueAttack, 0.0167, rate), cfg.CueVolumes[CueCollision]*cfg.MasterVolume)
}

// CreateNitroSound generates a rising saw sweep that fades out
func CreateNitroSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constants.NitroSoundDuration

	osc := NewLowpass(NewSweep(150, 600, time.Second, d, WaveSaw, rate, true), 2000, rate)
	shaped := NewEnvelope(osc, d, constants.CueAttack, d-constants.CueAttack, rate)
	return newVolume(shaped, cfg.CueVolumes[CueNitro]*cfg.MasterVolume)
}

// CreateVictorySound generates a rising major arpeggio of sine notes
func CreateVictorySound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constants.VictoryNoteDuration

	notes := []float64{440, 554, 659, 880, 1108, 1318}
	mixed := arpeggio(notes, constants.VictoryNoteSpacing, func(f float64) beep.Streamer {
		return NewDecay(sineNote(f, d, rate), d, 50*time.Millisecond, 0.01, rate)
	}, rate)
	return newVolume(mixed, cfg.CueVolumes[CueVictory]*cfg.MasterVolume)
}

// CreateDefeatSound generates a falling minor line
func CreateDefeatSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constants.DefeatNoteDuration

	notes := []float64{440, 392, 349, 330}
	mixed := arpeggio(notes, constants.DefeatNoteSpacing, func(f float64) beep.Streamer {
		return NewDecay(NewOscillator(f, d, WaveSaw, rate), d, 0, 0.02, rate)
	}, rate)
	return newVolume(mixed, cfg.CueVolumes[CueDefeat]*cfg.MasterVolume)
}

// GetCueSound returns a fresh streamer for the cue
func GetCueSound(cue Cue, cfg *Config) beep.Streamer {
	switch cue {
	case CueCountdown:
		return CreateCountdownSound(cfg)
	case CueGo:
		return CreateGoSound(cfg)
	case CueCollision:
		return CreateCollisionSound(cfg)
	case CueNitro:
		return CreateNitroSound(cfg)
	case CueVictory:
		return CreateVictorySound(cfg)
	case CueDefeat:
		return CreateDefeatSound(cfg)
	default:
		return nil
	}
}
