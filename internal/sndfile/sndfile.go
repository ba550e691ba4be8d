package sndfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/mewkiz/flac"
)

// LoadAudio reads a WAV or FLAC file, dispatching on the file extension,
// and returns mono samples plus the sample rate. Multi-channel audio is
// mixed down by averaging channels.
func LoadAudio(path string) ([]float64, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return LoadWAV(path)
	case ".flac":
		return LoadFLAC(path)
	default:
		return nil, 0, fmt.Errorf("sndfile: unsupported audio extension %q", filepath.Ext(path))
	}
}

// LoadWAV reads a WAV file as mono float64 samples.
func LoadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("sndfile: decoding %s: %w", path, err)
	}
	defer stream.Close()

	out := make([]float64, 0, stream.Len())
	buf := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(buf)
		for _, s := range buf[:n] {
			out = append(out, (s[0]+s[1])/2)
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, 0, fmt.Errorf("sndfile: reading %s: %w", path, err)
	}

	return out, int(format.SampleRate), nil
}

// LoadFLAC reads a FLAC file as mono float64 samples scaled to [-1, 1].
func LoadFLAC(path string) ([]float64, int, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("sndfile: parsing %s: %w", path, err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	scale := 1 / float64(uint64(1)<<(info.BitsPerSample-1))

	out := make([]float64, 0, info.NSamples)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("sndfile: reading %s: %w", path, err)
		}

		for i := range frame.Subframes[0].Samples {
			sum := 0.0
			for ch := 0; ch < channels; ch++ {
				sum += float64(frame.Subframes[ch].Samples[i])
			}
			out = append(out, sum/float64(channels)*scale)
		}
	}

	return out, int(info.SampleRate), nil
}

// SaveWAV writes mono samples as a 16-bit WAV file. Samples outside [-1, 1]
// are clipped.
func SaveWAV(path string, samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sndfile: sample rate must be positive, got %d", sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(f, &monoStreamer{samples: samples}, format); err != nil {
		f.Close()
		return fmt.Errorf("sndfile: encoding %s: %w", path, err)
	}

	return f.Close()
}

// monoStreamer adapts a float32 slice to the streaming interface the WAV
// encoder consumes, duplicating the mono signal into both channel slots.
type monoStreamer struct {
	samples []float32
	pos     int
}

func (m *monoStreamer) Stream(samples [][2]float64) (int, bool) {
	if m.pos >= len(m.samples) {
		return 0, false
	}

	n := 0
	for i := range samples {
		if m.pos >= len(m.samples) {
			break
		}
		v := float64(m.samples[m.pos])
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		samples[i][0] = v
		samples[i][1] = v
		m.pos++
		n++
	}

	return n, true
}

func (m *monoStreamer) Err() error { return nil }
