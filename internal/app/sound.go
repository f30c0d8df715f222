package app

import (
	"encoding/binary"
	"math"

	"github.com/Garsondee/Box-Cutter/internal/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate  = 44100
	bytesPerSec = sampleRate * 4 // 16-bit stereo
)

// tone synthesises notes played back to back, each noteSeconds long, as
// signed 16-bit little-endian stereo PCM. Each note fades out linearly.
func tone(freqs []float64, noteSeconds, volume float64) []byte {
	perNote := int(noteSeconds * sampleRate)
	if perNote <= 0 || len(freqs) == 0 {
		return nil
	}
	volume = math.Max(0, math.Min(1, volume))
	out := make([]byte, 0, perNote*len(freqs)*4)
	var frame [4]byte
	for _, f := range freqs {
		for i := 0; i < perNote; i++ {
			env := 1 - float64(i)/float64(perNote)
			v := math.Sin(2*math.Pi*f*float64(i)/sampleRate) * env * volume
			s := int16(v * math.MaxInt16)
			binary.LittleEndian.PutUint16(frame[0:], uint16(s)) // #nosec G115 -- two's complement reinterpretation
			binary.LittleEndian.PutUint16(frame[2:], uint16(s)) // #nosec G115
			out = append(out, frame[:]...)
		}
	}
	return out
}

// Sounds plays a short synthesised cue per engine event.
type Sounds struct {
	ctx     *audio.Context
	clips   map[game.EventType][]byte
	playing []*audio.Player
	Muted   bool
}

// NewSounds creates the process-wide audio context. Call it at most once.
func NewSounds() *Sounds {
	return &Sounds{
		ctx: audio.NewContext(sampleRate),
		clips: map[game.EventType][]byte{
			game.EventCapture:       tone([]float64{523.25, 659.25}, 0.06, 0.35),
			game.EventLevelComplete: tone([]float64{523.25, 659.25, 783.99, 1046.5}, 0.09, 0.4),
			game.EventGameOver:      tone([]float64{392, 311.13, 246.94}, 0.14, 0.45),
			game.EventBestScore:     tone([]float64{880}, 0.05, 0.25),
		},
	}
}

// Play starts the cue for kind, if any.
func (s *Sounds) Play(kind game.EventType) {
	if s == nil || s.Muted {
		return
	}
	clip, ok := s.clips[kind]
	if !ok || len(clip) == 0 {
		return
	}
	live := s.playing[:0]
	for _, p := range s.playing {
		if p.IsPlaying() {
			live = append(live, p)
		}
	}
	p := s.ctx.NewPlayerFromBytes(clip)
	p.Play()
	s.playing = append(live, p)
}
