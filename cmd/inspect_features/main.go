package main

import (
	"flag"
	"log"
	"sort"
	"strings"

	"orca-dataset/dataset"
)

func main() {
	dir := flag.String("dir", "data", "Directory holding features artifacts")
	split := flag.String("split", "TRAIN", "Split to inspect (TRAIN, VALIDATE or TEST)")
	remove := flag.String("remove", "", "Comma-separated labels to drop on load")
	other := flag.String("other", "", "Comma-separated labels to fold into the catch-all class")
	flag.Parse()

	store := dataset.NewFeatureStore(*dir)
	features, labels, err := store.Load(dataset.SplitKind(*split), commaList(*remove), commaList(*other))
	if err != nil {
		log.Fatalf("failed to load features: %v", err)
	}

	counts := make(map[string]int)
	zeroExamples := 0
	for i, label := range labels {
		counts[label]++
		if features[i].IsZero() {
			zeroExamples++
		}
	}

	log.Printf("%s: %d examples (%d zero-filled)\n", *split, len(features), zeroExamples)
	if len(features) > 0 {
		first := features[0]
		log.Printf("example shape: (%d, %d, 1)\n", first.Frames, first.Bands)
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	log.Println("Label distribution:")
	for _, name := range names {
		log.Printf("  %-20s: %d examples\n", name, counts[name])
	}

	encoder := dataset.FitLabelEncoder(labels)
	onehot, err := encoder.OneHot(labels)
	if err != nil {
		log.Fatalf("failed to one-hot encode labels: %v", err)
	}
	log.Printf("one-hot targets: %d x %d\n", len(onehot), encoder.NumClasses())
}

func commaList(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}
