package chime

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
	"github.com/olivier-w/motionsim/internal/soundfmt"
)

// Clip is signed 16-bit little-endian interleaved PCM.
type Clip struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

// Duration returns the clip length in seconds.
func (c Clip) Duration() float64 {
	frame := c.Channels * 2
	if frame == 0 || c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.PCM)/frame) / float64(c.SampleRate)
}

const (
	synthRate     = 44100
	synthChannels = 2
)

// Synthesize builds the default two-note chime: a short rising fifth with
// an exponential decay on each note.
func Synthesize() Clip {
	notes := []struct {
		freq float64
		dur  float64
	}{
		{880, 0.12},
		{1318.5, 0.22},
	}

	var pcm []byte
	for _, n := range notes {
		frames := int(n.dur * synthRate)
		buf := make([]byte, frames*synthChannels*2)
		for i := range frames {
			t := float64(i) / synthRate
			env := math.Exp(-t * 18)
			v := int16(math.Sin(2*math.Pi*n.freq*t) * env * 0.35 * 32767)
			for ch := range synthChannels {
				binary.LittleEndian.PutUint16(buf[(i*synthChannels+ch)*2:], uint16(v))
			}
		}
		pcm = append(pcm, buf...)
	}
	return Clip{PCM: pcm, SampleRate: synthRate, Channels: synthChannels}
}

// Decode reads a whole sound file into memory, picking the decoder by
// extension.
func Decode(path string) (Clip, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !soundfmt.IsSupportedExt(ext) {
		return Clip{}, fmt.Errorf("%w: %s (supported: %s)", soundfmt.ErrUnsupportedFormat, ext, soundfmt.SupportedExtsList())
	}

	f, err := os.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer f.Close()

	switch ext {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	case ".flac":
		return decodeFLAC(f)
	default:
		return decodeOGG(f)
	}
}

func decodeWAV(f *os.File) (Clip, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Clip{}, fmt.Errorf("invalid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	pcm := make([]byte, len(buf.Data)*2)
	for i, s := range buf.Data {
		putSample(pcm[i*2:], rescale(s, bitDepth))
	}
	return Clip{PCM: pcm, SampleRate: int(dec.SampleRate), Channels: int(dec.NumChans)}, nil
}

func decodeMP3(f *os.File) (Clip, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return Clip{}, fmt.Errorf("decoding MP3: %w", err)
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return Clip{}, fmt.Errorf("decoding MP3: %w", err)
	}
	// go-mp3 always yields 16-bit stereo.
	return Clip{PCM: pcm, SampleRate: dec.SampleRate(), Channels: 2}, nil
}

func decodeFLAC(f *os.File) (Clip, error) {
	stream, err := flac.New(f)
	if err != nil {
		return Clip{}, fmt.Errorf("decoding FLAC: %w", err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	bps := int(stream.Info.BitsPerSample)
	var pcm []byte
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Clip{}, fmt.Errorf("decoding FLAC: %w", err)
		}
		n := int(frame.Subframes[0].NSamples)
		raw := make([]byte, n*channels*2)
		for i := range n {
			for ch := range channels {
				s := rescale(int(frame.Subframes[ch].Samples[i]), bps)
				putSample(raw[(i*channels+ch)*2:], s)
			}
		}
		pcm = append(pcm, raw...)
	}
	return Clip{PCM: pcm, SampleRate: int(stream.Info.SampleRate), Channels: channels}, nil
}

func decodeOGG(f *os.File) (Clip, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return Clip{}, fmt.Errorf("decoding OGG: %w", err)
	}

	var pcm []byte
	samples := make([]float32, 4096)
	for {
		n, err := reader.Read(samples)
		for _, s := range samples[:n] {
			s = max(-1, min(1, s))
			var b [2]byte
			putSample(b[:], int(s*32767))
			pcm = append(pcm, b[:]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Clip{}, fmt.Errorf("decoding OGG: %w", err)
		}
	}
	return Clip{PCM: pcm, SampleRate: reader.SampleRate(), Channels: reader.Channels()}, nil
}

// rescale converts a sample of the given bit depth to 16 bits.
func rescale(sample, bitDepth int) int {
	switch {
	case bitDepth > 16:
		return sample >> (bitDepth - 16)
	case bitDepth == 8:
		// 8-bit WAV is unsigned.
		return (sample - 128) << 8
	case bitDepth < 16 && bitDepth > 0:
		return sample << (16 - bitDepth)
	}
	return sample
}

func putSample(dst []byte, s int) {
	if s > 32767 {
		s = 32767
	} else if s < -32768 {
		s = -32768
	}
	binary.LittleEndian.PutUint16(dst, uint16(int16(s)))
}
