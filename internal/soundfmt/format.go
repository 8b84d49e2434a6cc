// Package soundfmt lists the sound file formats the chime can decode.
// It has no audio dependencies so config can validate paths cheaply.
package soundfmt

import (
	"errors"
	"strings"
)

// ErrUnsupportedFormat is returned for sound files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported sound format")

var soundExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".ogg":  true,
}

// IsSupportedExt reports whether ext names a decodable sound format.
func IsSupportedExt(ext string) bool {
	return soundExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of sound formats.
func SupportedExtsList() string {
	return ".wav, .mp3, .flac, .ogg"
}
