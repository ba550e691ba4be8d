package sndfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/x448/float16"
)

// Spectrogram container layout, all little-endian:
//
//	bytes 0-3   magic "SVSF"
//	bytes 4-7   uint32 frame count
//	bytes 8-11  uint32 bin count
//	then        frames*bins float16 values, row-major
//
// Values are normalized magnitudes in [0, 1], so float16's ~3 decimal
// digits lose nothing audible while halving the file size versus float32.
var spectrogramMagic = [4]byte{'S', 'V', 'S', 'F'}

// WriteSpectrogram encodes a rectangular spectrogram to w.
func WriteSpectrogram(w io.Writer, spec [][]float64) error {
	bins := 0
	if len(spec) > 0 {
		bins = len(spec[0])
	}
	for i, row := range spec {
		if len(row) != bins {
			return fmt.Errorf("sndfile: ragged spectrogram: row %d has %d bins, row 0 has %d", i, len(row), bins)
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(spectrogramMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(spec))); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(bins)); err != nil {
		return err
	}

	var b [2]byte
	for _, row := range spec {
		for _, v := range row {
			binary.LittleEndian.PutUint16(b[:], float16.Fromfloat32(float32(v)).Bits())
			if _, err := bw.Write(b[:]); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// ReadSpectrogram decodes a spectrogram written by [WriteSpectrogram].
func ReadSpectrogram(r io.Reader) ([][]float64, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("sndfile: reading spectrogram header: %w", err)
	}
	if magic != spectrogramMagic {
		return nil, fmt.Errorf("sndfile: bad spectrogram magic %q", magic[:])
	}

	var frames, bins uint32
	if err := binary.Read(br, binary.LittleEndian, &frames); err != nil {
		return nil, fmt.Errorf("sndfile: reading spectrogram header: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &bins); err != nil {
		return nil, fmt.Errorf("sndfile: reading spectrogram header: %w", err)
	}

	spec := make([][]float64, frames)
	var b [2]byte
	for i := range spec {
		row := make([]float64, bins)
		for j := range row {
			if _, err := io.ReadFull(br, b[:]); err != nil {
				return nil, fmt.Errorf("sndfile: spectrogram truncated at frame %d: %w", i, err)
			}
			row[j] = float64(float16.Frombits(binary.LittleEndian.Uint16(b[:])).Float32())
		}
		spec[i] = row
	}

	return spec, nil
}

// SaveSpectrogram writes a spectrogram container file.
func SaveSpectrogram(path string, spec [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSpectrogram(f, spec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadSpectrogram reads a spectrogram container file.
func LoadSpectrogram(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSpectrogram(f)
}
