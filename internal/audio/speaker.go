package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// resampleQuality trades CPU for fidelity when track rates differ
const resampleQuality = 4

// SpeakerPlayer plays tracks on the default output device. The speaker is
// initialised lazily with the sample rate of the first track played.
type SpeakerPlayer struct {
	mu         sync.Mutex
	ready      bool
	sampleRate beep.SampleRate
	ctrl       *beep.Ctrl
}

// NewSpeakerPlayer creates an idle player
func NewSpeakerPlayer() *SpeakerPlayer {
	return &SpeakerPlayer{}
}

type beepTrack struct {
	path     string
	streamer beep.StreamSeekCloser
	format   beep.Format
}

func (t *beepTrack) Path() string { return t.path }
func (t *beepTrack) Close() error { return t.streamer.Close() }

// Load decodes the file at path
func (p *SpeakerPlayer) Load(path string) (Track, error) {
	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		bf       beep.Format
	)
	switch format {
	case "mp3":
		streamer, bf, err = mp3.Decode(f)
	case "wav":
		streamer, bf, err = wav.Decode(f)
	case "flac":
		streamer, bf, err = flac.Decode(f)
	case "vorbis":
		streamer, bf, err = vorbis.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &beepTrack{path: path, streamer: streamer, format: bf}, nil
}

// Play replaces whatever is playing with track, from its beginning
func (p *SpeakerPlayer) Play(track Track, loop bool) error {
	t, ok := track.(*beepTrack)
	if !ok {
		return fmt.Errorf("%w: track %s was not loaded by this player", ErrUnsupportedFormat, track.Path())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		if err := speaker.Init(t.format.SampleRate, t.format.SampleRate.N(time.Second/10)); err != nil {
			return fmt.Errorf("failed to initialise speaker: %w", err)
		}
		p.ready = true
		p.sampleRate = t.format.SampleRate
	}

	if err := t.streamer.Seek(0); err != nil {
		return fmt.Errorf("failed to rewind %s: %w", t.path, err)
	}

	var s beep.Streamer = t.streamer
	if loop {
		s = beep.Loop(-1, t.streamer)
	}
	if t.format.SampleRate != p.sampleRate {
		s = beep.Resample(resampleQuality, t.format.SampleRate, p.sampleRate, s)
	}

	speaker.Clear()
	p.ctrl = &beep.Ctrl{Streamer: s}
	speaker.Play(p.ctrl)
	return nil
}

// Pause stops output; the track stays queued until the next Play
func (p *SpeakerPlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return nil
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	return nil
}
