// Package audio plays the game's sound effects. Effects are short sine
// beeps synthesized at startup, so the game ships without sound files.
package audio

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate of every synthesized effect.
const SampleRate = 48000

// Sound names an effect.
type Sound string

const (
	SoundStart  Sound = "start-game"
	SoundEnd    Sound = "end-game"
	SoundShoot  Sound = "shoot"
	SoundHit    Sound = "hit"
	SoundPickup Sound = "pickup"
)

// Beep is a sine tone.
type Beep struct {
	Freq     float64 // Hz
	Duration float64 // seconds
}

// Beeps is the tone of each effect.
var Beeps = map[Sound]Beep{
	SoundStart:  {Freq: 660, Duration: 0.25},
	SoundEnd:    {Freq: 220, Duration: 0.4},
	SoundShoot:  {Freq: 950, Duration: 0.07},
	SoundHit:    {Freq: 240, Duration: 0.12},
	SoundPickup: {Freq: 1320, Duration: 0.08},
}

const beepAmplitude = 0.35

// SynthBeep renders b as 16-bit little endian stereo PCM. The tone fades out
// over its last tenth to avoid a click.
func SynthBeep(sampleRate int, b Beep) []byte {
	n := int(float64(sampleRate) * b.Duration)
	pcm := make([]byte, n*4)
	fade := max(n/10, 1)

	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * b.Freq * float64(i) / float64(sampleRate))
		if left := n - i; left < fade {
			v *= float64(left) / float64(fade)
		}
		s := uint16(int16(v * beepAmplitude * math.MaxInt16))
		binary.LittleEndian.PutUint16(pcm[4*i:], s)   // left
		binary.LittleEndian.PutUint16(pcm[4*i+2:], s) // right
	}
	return pcm
}

// Player plays the effects through an ebiten audio context.
type Player struct {
	ctx     *audio.Context
	players map[Sound]*audio.Player
	volume  float64
}

// NewPlayer synthesizes every effect for ctx. ctx must run at SampleRate.
func NewPlayer(ctx *audio.Context) *Player {
	p := &Player{
		ctx:     ctx,
		players: make(map[Sound]*audio.Player, len(Beeps)),
		volume:  1,
	}
	for name, b := range Beeps {
		p.players[name] = ctx.NewPlayerFromBytes(SynthBeep(ctx.SampleRate(), b))
	}
	return p
}

// SetVolume sets the effect volume from a 0-100 setting.
func (p *Player) SetVolume(volume int) {
	p.volume = VolumeScale(volume)
	for _, pl := range p.players {
		pl.SetVolume(p.volume)
	}
}

// Play restarts the effect from its beginning.
func (p *Player) Play(s Sound) {
	pl, ok := p.players[s]
	if !ok || p.volume == 0 {
		return
	}
	_ = pl.Rewind()
	pl.Play()
}

// VolumeScale converts a 0-100 setting to the 0-1 player volume.
func VolumeScale(volume int) float64 {
	return float64(min(max(volume, 0), 100)) / 100
}
