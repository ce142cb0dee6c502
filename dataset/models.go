package dataset

import "sort"

// SplitKind identifies one of the three dataset partitions.
type SplitKind string

const (
	SplitTrain    SplitKind = "TRAIN"
	SplitValidate SplitKind = "VALIDATE"
	SplitTest     SplitKind = "TEST"
)

// Splits lists the recognized splits in pipeline order.
var Splits = []SplitKind{SplitTrain, SplitValidate, SplitTest}

// Valid reports whether s is one of the recognized splits.
func (s SplitKind) Valid() bool {
	switch s {
	case SplitTrain, SplitValidate, SplitTest:
		return true
	}
	return false
}

// LabeledFile pairs one audio file with its derived class label.
type LabeledFile struct {
	Label string
	Path  string
}

// SampleCollection maps a class label to the ordered list of audio files
// carrying that label. File order within a label is preserved until the
// splitter shuffles it.
type SampleCollection map[string][]string

// Add appends paths to a label's file list, creating the entry on first use.
func (c SampleCollection) Add(label string, paths ...string) {
	c[label] = append(c[label], paths...)
}

// TotalFiles returns the number of files across all labels.
func (c SampleCollection) TotalFiles() int {
	total := 0
	for _, files := range c {
		total += len(files)
	}
	return total
}

// Labels returns the label names in lexicographic order.
func (c SampleCollection) Labels() []string {
	labels := make([]string, 0, len(c))
	for label := range c {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Flatten expands the collection into (label, path) pairs. Labels are visited
// in lexicographic order so the flattened sequence is deterministic.
func (c SampleCollection) Flatten() []LabeledFile {
	flat := make([]LabeledFile, 0, c.TotalFiles())
	for _, label := range c.Labels() {
		for _, path := range c[label] {
			flat = append(flat, LabeledFile{Label: label, Path: path})
		}
	}
	return flat
}

// SegmentRef identifies one fixed-length slice of a source file without
// materializing its audio. StartFrame and FrameCount are in the file's native
// sample rate.
type SegmentRef struct {
	Label      string
	Source     string
	StartFrame int
	FrameCount int
}

// FeatureExample is one fixed-shape log-mel example: Frames time steps by
// Bands mel bands by one channel, stored row-major.
type FeatureExample struct {
	Frames int
	Bands  int
	Data   []float64
}

// NewZeroExample returns an all-zero example of the canonical shape, used
// when a segment is too short to produce a real spectrogram window.
func NewZeroExample() FeatureExample {
	return FeatureExample{
		Frames: ExampleFrames,
		Bands:  MelBands,
		Data:   make([]float64, ExampleFrames*MelBands),
	}
}

// At returns the value at a (frame, band) position.
func (e FeatureExample) At(frame, band int) float64 {
	return e.Data[frame*e.Bands+band]
}

// IsZero reports whether every cell of the example is zero.
func (e FeatureExample) IsZero() bool {
	for _, v := range e.Data {
		if v != 0 {
			return false
		}
	}
	return true
}

// LabeledExample pairs an example with its class label, the unit persisted
// per split.
type LabeledExample struct {
	Label   string
	Example FeatureExample
}
