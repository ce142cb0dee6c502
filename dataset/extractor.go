package dataset

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"orca-dataset/mel"
	"orca-dataset/utils"
	"orca-dataset/wav"
)

// Extractor converts segment references into fixed-shape log-mel examples.
//
// Each segment goes through the same chain: read the referenced frames,
// downmix to mono, resample to TargetSampleRate, compute the log-mel
// spectrogram, and frame it into ExampleFrames-length windows. Segments too
// short to fill one window come back as an all-zero example of the canonical
// shape instead of a variably-shaped one, so every example in a split is
// interchangeable downstream.
type Extractor struct {
	melCfg       mel.Config
	windowLength int // example window in spectrogram frames
	hopLength    int // example hop in spectrogram frames
}

// NewExtractor returns an extractor bound to the canonical configuration.
func NewExtractor() *Extractor {
	cfg := MelConfig()
	featuresRate := cfg.FramesPerSecond()
	return &Extractor{
		melCfg:       cfg,
		windowLength: int(math.Round(ExampleWindowSeconds * featuresRate)),
		hopLength:    int(math.Round(ExampleHopSeconds * featuresRate)),
	}
}

// Extract produces exactly one example for the referenced segment.
func (e *Extractor) Extract(ref SegmentRef) (FeatureExample, error) {
	segment, err := wav.ReadSegment(ref.Source, ref.StartFrame, ref.FrameCount)
	if err != nil {
		return FeatureExample{}, fmt.Errorf("failed to read segment: %w", err)
	}

	mono := wav.Downmix(segment.Samples, segment.Channels)
	if segment.SampleRate != e.melCfg.SampleRate {
		mono = wav.Resample(mono, segment.SampleRate, e.melCfg.SampleRate)
	}

	spectrogram := mel.LogMelSpectrogram(mono, e.melCfg)
	windows := mel.Frame(spectrogram, e.windowLength, e.hopLength)
	if len(windows) == 0 {
		utils.GetLogger().Warn("audio segment too short for a spectrogram window, substituting zeros",
			"source", ref.Source,
			"startFrame", ref.StartFrame,
			"frames", ref.FrameCount)
		return NewZeroExample(), nil
	}

	// a long enough segment can frame into several windows; only the first
	// is kept so each segment maps to exactly one example
	example := FeatureExample{
		Frames: e.windowLength,
		Bands:  e.melCfg.Bands,
		Data:   make([]float64, e.windowLength*e.melCfg.Bands),
	}
	for frame, bands := range windows[0] {
		copy(example.Data[frame*e.melCfg.Bands:], bands)
	}
	return example, nil
}

// ExtractAll runs extraction over a flat segment list with a worker pool.
// Results keep the input order regardless of worker scheduling, since the
// persisted sequence must match the segment sequence. A progress bar tracks
// completion percentage on stdout.
func (e *Extractor) ExtractAll(refs []SegmentRef) ([]LabeledExample, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	progress := mpb.New(mpb.WithWidth(64))
	bar := progress.AddBar(int64(len(refs)),
		mpb.PrependDecorators(
			decor.Name("Extracting: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	type job struct{ index int }
	jobs := make(chan job)
	results := make([]LabeledExample, len(refs))
	errs := make([]error, len(refs))

	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				ref := refs[j.index]
				example, err := e.Extract(ref)
				if err != nil {
					errs[j.index] = fmt.Errorf("segment %s@%d: %w", ref.Source, ref.StartFrame, err)
				} else {
					results[j.index] = LabeledExample{Label: ref.Label, Example: example}
				}
				bar.Increment()
			}
		}()
	}

	for i := range refs {
		jobs <- job{index: i}
	}
	close(jobs)
	wg.Wait()
	progress.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
