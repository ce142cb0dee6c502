package dataset

import (
	"encoding/gob"
	"errors"
	"os"
	"reflect"
	"testing"
)

func makeExample(fill float64) FeatureExample {
	example := NewZeroExample()
	for i := range example.Data {
		example.Data[i] = fill + float64(i%7)/10
	}
	return example
}

func sampleExamples() []LabeledExample {
	return []LabeledExample{
		{Label: "Orca", Example: makeExample(1)},
		{Label: "Noise", Example: makeExample(2)},
		{Label: "Seal", Example: makeExample(3)},
		{Label: "Orca", Example: makeExample(4)},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewFeatureStore(t.TempDir())
	data := sampleExamples()
	if err := store.Save(SplitTrain, data); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	features, labels, err := store.Load(SplitTrain, nil, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(features) != len(data) || len(labels) != len(data) {
		t.Fatalf("expected %d entries back, got %d features / %d labels", len(data), len(features), len(labels))
	}
	for i, entry := range data {
		if labels[i] != entry.Label {
			t.Fatalf("label %d: got %q, expected %q", i, labels[i], entry.Label)
		}
		if !reflect.DeepEqual(features[i], entry.Example) {
			t.Fatalf("feature %d differs after round trip", i)
		}
	}
}

func TestLoadRemovesLabels(t *testing.T) {
	t.Parallel()

	store := NewFeatureStore(t.TempDir())
	if err := store.Save(SplitValidate, sampleExamples()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	features, labels, err := store.Load(SplitValidate, []string{"Noise"}, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(features) != 3 {
		t.Fatalf("expected 3 entries after removal, got %d", len(features))
	}
	for _, label := range labels {
		if label == "Noise" {
			t.Fatal("removed label leaked through Load")
		}
	}
}

func TestLoadRenamesToCatchAll(t *testing.T) {
	t.Parallel()

	store := NewFeatureStore(t.TempDir())
	data := sampleExamples()
	if err := store.Save(SplitTest, data); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	features, labels, err := store.Load(SplitTest, nil, []string{"Seal"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if labels[2] != OtherLabel {
		t.Fatalf("expected Seal renamed to %q, got %q", OtherLabel, labels[2])
	}
	// renaming must not touch the feature data
	if !reflect.DeepEqual(features[2], data[2].Example) {
		t.Fatal("feature data changed during label renaming")
	}
	if len(features) != len(data) {
		t.Fatalf("renaming must not drop entries: got %d of %d", len(features), len(data))
	}
}

func TestSaveRejectsUnknownSplit(t *testing.T) {
	t.Parallel()

	store := NewFeatureStore(t.TempDir())
	err := store.Save(SplitKind("HOLDOUT"), sampleExamples())
	if !errors.Is(err, ErrInvalidSplit) {
		t.Fatalf("expected ErrInvalidSplit, got %v", err)
	}

	_, _, err = store.Load(SplitKind("HOLDOUT"), nil, nil)
	if !errors.Is(err, ErrInvalidSplit) {
		t.Fatalf("expected ErrInvalidSplit on load, got %v", err)
	}
}

func TestLoadBeforeGeneration(t *testing.T) {
	t.Parallel()

	store := NewFeatureStore(t.TempDir())
	_, _, err := store.Load(SplitTrain, nil, nil)
	if !errors.Is(err, ErrMissingArtifact) {
		t.Fatalf("expected ErrMissingArtifact, got %v", err)
	}
}

func TestSecondSaveKeepsBackupOfFirst(t *testing.T) {
	t.Parallel()

	store := NewFeatureStore(t.TempDir())
	first := sampleExamples()[:2]
	second := sampleExamples()[2:]

	if err := store.Save(SplitTrain, first); err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}
	if err := store.Save(SplitTrain, second); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	_, labels, err := store.Load(SplitTrain, nil, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(labels) != len(second) || labels[0] != second[0].Label {
		t.Fatalf("primary artifact should hold the second save, got labels %v", labels)
	}

	backup, err := os.Open(store.Path(SplitTrain) + backupSuffix)
	if err != nil {
		t.Fatalf("expected a backup artifact: %v", err)
	}
	defer backup.Close()

	var backedUp []LabeledExample
	if err := gob.NewDecoder(backup).Decode(&backedUp); err != nil {
		t.Fatalf("failed to decode backup: %v", err)
	}
	if !reflect.DeepEqual(backedUp, first) {
		t.Fatal("backup should hold the first save's contents")
	}
}
