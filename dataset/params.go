package dataset

import "orca-dataset/mel"

// Canonical pipeline parameters. These are deliberately constants rather than
// per-call options: every persisted example must share the exact same shape
// and spectral resolution, so nothing here may vary within or across splits.
const (
	// TargetSampleRate is the rate every segment is resampled to before
	// spectrogram extraction.
	TargetSampleRate = 16000

	// STFT resolution of the log-mel front end.
	STFTWindowSeconds = 0.025
	STFTHopSeconds    = 0.010

	// Mel filterbank shape and range.
	MelBands  = 64
	MelMinHz  = 125.0
	MelMaxHz  = 7500.0
	LogOffset = 0.01

	// Example framing: spectrogram windows this long (in seconds of audio)
	// become one model-ready example. Window and hop are equal, so examples
	// never overlap.
	ExampleWindowSeconds = 4.96
	ExampleHopSeconds    = 4.96

	// ExampleFrames is the fixed time dimension of every persisted example:
	// ExampleWindowSeconds at the spectrogram frame rate (1/STFTHopSeconds).
	ExampleFrames = 496

	// Segment quantization granularity. MaxSegmentSeconds is accepted
	// through the call chain but not yet enforced; see Quantize.
	SegmentSeconds    = 5.0
	MaxSegmentSeconds = 10.0

	// Stratified split proportions; the remainder goes to TEST.
	TrainFraction    = 0.70
	ValidateFraction = 0.20

	// MinFilesPerLabel is the stratification floor: labels with fewer files
	// are excluded from all splits.
	MinFilesPerLabel = 10

	// ShuffleSeed is the default seed for the split shuffle so repeated runs
	// over identical inputs produce identical splits.
	ShuffleSeed = 251

	// OtherLabel is the catch-all class absorbing labels renamed at load time.
	OtherLabel = "Other"
)

// MelConfig returns the canonical spectrogram configuration shared by all
// feature extraction.
func MelConfig() mel.Config {
	return mel.Config{
		SampleRate:    TargetSampleRate,
		WindowSeconds: STFTWindowSeconds,
		HopSeconds:    STFTHopSeconds,
		Bands:         MelBands,
		MinHz:         MelMinHz,
		MaxHz:         MelMaxHz,
		LogOffset:     LogOffset,
	}
}
