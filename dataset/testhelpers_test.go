package dataset

import (
	"math"
	"os"
	"testing"

	"github.com/go-audio/audio"
	audiowav "github.com/go-audio/wav"
)

// writeTestWav writes 16-bit PCM samples (interleaved when channels > 1) to
// a WAV file at path.
func writeTestWav(t *testing.T, path string, sampleRate, channels int, samples []int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}

	encoder := audiowav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		t.Fatalf("failed to write samples: %v", err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("failed to close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
}

// sineSamples generates frames of a 16-bit sine tone at the given frequency.
func sineSamples(frames, sampleRate int, freq float64) []int {
	samples := make([]int, frames)
	for i := range samples {
		samples[i] = int(16000 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return samples
}
