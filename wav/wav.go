package wav

// Audio file access for the dataset pipeline.
//
// Two operations are needed by the pipeline and nothing more:
//
//  1. ReadMetadata: header-only inspection (sample rate, channel count, total
//     frame count) used by segment quantization, which must not pull full
//     audio into memory just to compute segment boundaries.
//  2. ReadSegment: a bounded PCM read of exactly one segment's frames,
//     returned as interleaved float64 samples in [-1, 1].
//
// Both are built on github.com/go-audio/wav; the raw byte-to-sample decode is
// done here so a segment read never allocates more than the requested range.

import (
	"errors"
	"fmt"
	"io"
	"os"

	audiowav "github.com/go-audio/wav"
)

// Metadata describes a WAV file without touching its PCM payload.
type Metadata struct {
	SampleRate  int
	Channels    int
	BitDepth    int
	TotalFrames int
}

// Duration returns the file length in seconds.
func (m *Metadata) Duration() float64 {
	if m.SampleRate <= 0 {
		return 0
	}
	return float64(m.TotalFrames) / float64(m.SampleRate)
}

// Segment holds a decoded slice of PCM audio. Samples are interleaved when
// Channels > 1.
type Segment struct {
	Samples    []float64
	Channels   int
	SampleRate int
}

// FrameCount returns the number of per-channel frames in the segment.
func (s *Segment) FrameCount() int {
	if s.Channels <= 0 {
		return 0
	}
	return len(s.Samples) / s.Channels
}

// ReadMetadata reads the WAV header and the size of the data chunk.
func ReadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := audiowav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", path)
	}
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to locate PCM chunk in %s: %w", path, err)
	}

	blockAlign := int(decoder.NumChans) * int(decoder.BitDepth) / 8
	if blockAlign <= 0 {
		return nil, fmt.Errorf("unsupported WAV format in %s", path)
	}

	return &Metadata{
		SampleRate:  int(decoder.SampleRate),
		Channels:    int(decoder.NumChans),
		BitDepth:    int(decoder.BitDepth),
		TotalFrames: decoder.PCMSize / blockAlign,
	}, nil
}

// ReadSegment decodes frameCount frames starting at startFrame. A range that
// runs past the end of the data chunk is clipped to what the file holds.
func ReadSegment(path string, startFrame, frameCount int) (*Segment, error) {
	if startFrame < 0 || frameCount <= 0 {
		return nil, errors.New("invalid segment range")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := audiowav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", path)
	}
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to locate PCM chunk in %s: %w", path, err)
	}

	channels := int(decoder.NumChans)
	bitDepth := int(decoder.BitDepth)
	blockAlign := channels * bitDepth / 8
	if blockAlign <= 0 {
		return nil, fmt.Errorf("unsupported WAV format in %s", path)
	}

	totalFrames := decoder.PCMSize / blockAlign
	if startFrame >= totalFrames {
		return nil, fmt.Errorf("segment start %d beyond end of %s (%d frames)", startFrame, path, totalFrames)
	}
	if startFrame+frameCount > totalFrames {
		frameCount = totalFrames - startFrame
	}

	if _, err := io.CopyN(io.Discard, decoder.PCMChunk, int64(startFrame)*int64(blockAlign)); err != nil {
		return nil, fmt.Errorf("failed to seek to frame %d in %s: %w", startFrame, path, err)
	}

	raw := make([]byte, frameCount*blockAlign)
	n, err := io.ReadFull(decoder.PCMChunk, raw)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read segment from %s: %w", path, err)
	}
	raw = raw[:n-n%blockAlign]

	samples, err := bytesToSamples(raw, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to decode samples from %s: %w", path, err)
	}

	return &Segment{
		Samples:    samples,
		Channels:   channels,
		SampleRate: int(decoder.SampleRate),
	}, nil
}

// bytesToSamples converts little-endian PCM bytes into float64 samples
// normalised to [-1, 1].
func bytesToSamples(raw []byte, bitDepth int) ([]float64, error) {
	switch bitDepth {
	case 16:
		samples := make([]float64, len(raw)/2)
		for i := range samples {
			v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
			samples[i] = float64(v) / 32768.0
		}
		return samples, nil
	case 24:
		samples := make([]float64, len(raw)/3)
		for i := range samples {
			v := int32(uint32(raw[3*i]) | uint32(raw[3*i+1])<<8 | uint32(raw[3*i+2])<<16)
			// sign-extend from 24 bits
			if v&0x800000 != 0 {
				v |= ^int32(0xffffff)
			}
			samples[i] = float64(v) / 8388608.0
		}
		return samples, nil
	case 32:
		samples := make([]float64, len(raw)/4)
		for i := range samples {
			v := int32(uint32(raw[4*i]) | uint32(raw[4*i+1])<<8 | uint32(raw[4*i+2])<<16 | uint32(raw[4*i+3])<<24)
			samples[i] = float64(v) / 2147483648.0
		}
		return samples, nil
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
}

// Downmix averages interleaved channels into a mono signal. Mono input is
// returned as-is.
func Downmix(samples []float64, channels int) []float64 {
	if channels <= 1 {
		return samples
	}
	frames := len(samples) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += samples[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}
