package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFitOrdersClassesLexicographically(t *testing.T) {
	t.Parallel()

	encoder := FitLabelEncoder([]string{"B", "A", "C"})
	if !reflect.DeepEqual(encoder.Classes, []string{"A", "B", "C"}) {
		t.Fatalf("expected lexicographic class order, got %v", encoder.Classes)
	}

	onehot, err := encoder.OneHot([]string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("OneHot returned error: %v", err)
	}
	for row, want := range []int{0, 1, 2} {
		argmax := 0
		for col, v := range onehot[row] {
			if v > onehot[row][argmax] {
				argmax = col
			}
		}
		if argmax != want {
			t.Fatalf("row %d: argmax %d, expected lexicographic rank %d", row, argmax, want)
		}
	}
}

func TestOneHotRowsSumToOne(t *testing.T) {
	t.Parallel()

	encoder := FitLabelEncoder([]string{"Orca", "Noise", "Other"})
	onehot, err := encoder.OneHot([]string{"Noise", "Noise", "Orca"})
	if err != nil {
		t.Fatalf("OneHot returned error: %v", err)
	}
	if len(onehot) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(onehot))
	}
	for i, row := range onehot {
		if len(row) != encoder.NumClasses() {
			t.Fatalf("row %d has %d columns, expected %d", i, len(row), encoder.NumClasses())
		}
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum != 1 {
			t.Fatalf("row %d sums to %f, expected exactly one hot cell", i, sum)
		}
	}
}

func TestFitDeduplicatesClasses(t *testing.T) {
	t.Parallel()

	encoder := FitLabelEncoder([]string{"Orca", "Orca", "Noise", "Orca"})
	if encoder.NumClasses() != 2 {
		t.Fatalf("expected 2 distinct classes, got %d", encoder.NumClasses())
	}
}

func TestTransformRejectsUnknownLabel(t *testing.T) {
	t.Parallel()

	encoder := FitLabelEncoder([]string{"Orca"})
	if _, err := encoder.Transform([]string{"Dolphin"}); err == nil {
		t.Fatal("expected error for a label not seen during fitting")
	}
}

func TestEncoderSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	encoder := FitLabelEncoder([]string{"Seal", "Orca", "Noise"})
	if err := encoder.Save(dir, "20190801-120000"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	restored, err := LoadLabelEncoder(LatestEncoderPath(dir))
	if err != nil {
		t.Fatalf("LoadLabelEncoder returned error: %v", err)
	}
	if !reflect.DeepEqual(restored.Classes, encoder.Classes) {
		t.Fatalf("restored classes %v differ from %v", restored.Classes, encoder.Classes)
	}

	ids, err := restored.Transform([]string{"Orca"})
	if err != nil {
		t.Fatalf("restored encoder cannot transform: %v", err)
	}
	if ids[0] != 1 {
		t.Fatalf("expected Orca id 1 after Noise, got %d", ids[0])
	}
}

func TestEncoderWritesReadableTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	encoder := FitLabelEncoder([]string{"B", "A"})
	if err := encoder.Save(dir, "20190801-120000"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "label_encoder_latest.csv"))
	if err != nil {
		t.Fatalf("expected latest csv alias: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	want := [][]string{
		{"encoded_id", "label"},
		{"0", "A"},
		{"1", "B"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("csv table %v, expected %v", records, want)
	}
}

func TestEncoderLatestAliasFollowsMostRecentRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := FitLabelEncoder([]string{"Old"}).Save(dir, "20190801-120000"); err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}
	if err := FitLabelEncoder([]string{"New"}).Save(dir, "20190802-120000"); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	restored, err := LoadLabelEncoder(LatestEncoderPath(dir))
	if err != nil {
		t.Fatalf("LoadLabelEncoder returned error: %v", err)
	}
	if !reflect.DeepEqual(restored.Classes, []string{"New"}) {
		t.Fatalf("latest alias should resolve the most recent run, got %v", restored.Classes)
	}

	// both runs' timestamped artifacts remain on disk
	if _, err := os.Stat(filepath.Join(dir, "label_encoder_20190801-120000.p")); err != nil {
		t.Errorf("first run's encoder artifact missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "label_encoder_20190802-120000.p")); err != nil {
		t.Errorf("second run's encoder artifact missing: %v", err)
	}
}
