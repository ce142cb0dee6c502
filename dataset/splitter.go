package dataset

import (
	"math/rand"

	"orca-dataset/utils"
)

// Splitter partitions an indexed sample collection into stratified
// train/validate/test splits. The random source is injected so runs are
// reproducible and tests can pin the shuffle.
type Splitter struct {
	rng *rand.Rand
}

// NewSplitter returns a splitter around the given generator. A nil rng falls
// back to a fresh generator seeded with ShuffleSeed.
func NewSplitter(rng *rand.Rand) *Splitter {
	if rng == nil {
		rng = rand.New(rand.NewSource(ShuffleSeed))
	}
	return &Splitter{rng: rng}
}

// Split shuffles each label's files and slices them into contiguous
// [train][validate][remainder] ranges. Labels with fewer than
// MinFilesPerLabel files are dropped from all three outputs.
//
// Split sizes use the (n+1) rounding convention: both train and validate get
// int((n+1) * fraction) files, biasing boundary counts toward those splits
// for small labels. The remainder goes to TEST.
func (s *Splitter) Split(samples SampleCollection, trainFraction, validateFraction float64) map[SplitKind]SampleCollection {
	logger := utils.GetLogger()
	splits := map[SplitKind]SampleCollection{
		SplitTrain:    {},
		SplitValidate: {},
		SplitTest:     {},
	}

	// labels visited in sorted order so the shuffle sequence is stable
	for _, label := range samples.Labels() {
		files := samples[label]
		if len(files) < MinFilesPerLabel {
			logger.Warn("label has too few files to stratify, excluding from all splits",
				"label", label,
				"files", len(files),
				"minimum", MinFilesPerLabel)
			continue
		}

		shuffled := append([]string(nil), files...)
		s.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		n := len(shuffled)
		trainCount := int(float64(n+1) * trainFraction)
		validateCount := int(float64(n+1) * validateFraction)
		// the (n+1) bias can overshoot for fractions near 1; clip to the
		// available files so TEST simply ends up empty
		if trainCount > n {
			trainCount = n
		}
		if trainCount+validateCount > n {
			validateCount = n - trainCount
		}

		splits[SplitTrain][label] = shuffled[:trainCount]
		splits[SplitValidate][label] = shuffled[trainCount : trainCount+validateCount]
		splits[SplitTest][label] = shuffled[trainCount+validateCount:]
	}

	return splits
}
