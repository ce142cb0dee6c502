package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"orca-dataset/dataset"
	"orca-dataset/wav"
)

// Extracts features from the same segment several times and verifies the
// runs agree, so artifact diffs between pipeline runs can be trusted.
func main() {
	path := flag.String("file", "", "wav file to extract from")
	runs := flag.Int("runs", 5, "number of extraction runs to compare")
	flag.Parse()

	if *path == "" {
		log.Fatal("usage: check_determinism -file <path-to-wav> [-runs N]")
	}

	meta, err := wav.ReadMetadata(*path)
	if err != nil {
		log.Fatalf("failed to read wav metadata: %v", err)
	}

	segmentFrames := int(dataset.SegmentSeconds * float64(meta.SampleRate))
	if segmentFrames > meta.TotalFrames {
		segmentFrames = meta.TotalFrames
	}
	ref := dataset.SegmentRef{
		Label:      "probe",
		Source:     *path,
		StartFrame: 0,
		FrameCount: segmentFrames,
	}

	extractor := dataset.NewExtractor()
	examples := make([]dataset.FeatureExample, 0, *runs)
	for i := 0; i < *runs; i++ {
		example, err := extractor.Extract(ref)
		if err != nil {
			log.Fatalf("run %d failed: %v", i+1, err)
		}
		examples = append(examples, example)
		log.Printf("run %d: first values: %.10f, %.10f, %.10f",
			i+1, example.Data[0], example.Data[1], example.Data[2])
	}

	allIdentical := true
	maxDiff := 0.0
	for i := 1; i < len(examples); i++ {
		for j := range examples[0].Data {
			diff := math.Abs(examples[0].Data[j] - examples[i].Data[j])
			if diff > maxDiff {
				maxDiff = diff
			}
			if diff != 0 {
				allIdentical = false
			}
		}
	}

	if allIdentical {
		fmt.Printf("all %d runs produced identical features\n", *runs)
	} else {
		fmt.Printf("extraction is NON-deterministic, max diff %e\n", maxDiff)
	}
}
