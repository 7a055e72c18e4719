// Package audio plays scene soundtracks.
//
// A single Player is shared by every scene of a session; each scene loads
// its own Track and hands it to the player, which swaps the queued stream.
package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrTrackNotFound     = errors.New("audio track not found")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Track is a decoded audio resource ready for playback
type Track interface {
	// Path of the file the track was loaded from
	Path() string
	Close() error
}

// Player loads and plays tracks, one at a time
type Player interface {
	Load(path string) (Track, error)
	Play(track Track, loop bool) error
	Pause() error
}

// Formats maps a lower-case file extension to its format name
var Formats = map[string]string{
	".mp3":  "mp3",
	".wav":  "wav",
	".flac": "flac",
	".ogg":  "vorbis",
}

// formatFor validates path and returns its format name
func formatFor(path string) (string, error) {
	format, ok := Formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTrackNotFound, path)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrTrackNotFound, path)
	}
	return format, nil
}

// Silent is a Player that validates tracks but produces no sound. It stands
// in when audio is disabled or no output device is available.
type Silent struct {
	playing Track
	looping bool
}

type silentTrack struct {
	path string
}

func (t silentTrack) Path() string { return t.path }
func (t silentTrack) Close() error { return nil }

// Load checks that path exists and has a playable extension
func (s *Silent) Load(path string) (Track, error) {
	if _, err := formatFor(path); err != nil {
		return nil, err
	}
	return silentTrack{path: path}, nil
}

// Play records the track as playing
func (s *Silent) Play(track Track, loop bool) error {
	s.playing = track
	s.looping = loop
	return nil
}

// Pause clears the playing track
func (s *Silent) Pause() error {
	s.playing = nil
	return nil
}

// Playing returns the current track, nil when paused
func (s *Silent) Playing() (Track, bool) {
	return s.playing, s.looping
}
