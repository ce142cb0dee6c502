package db

import (
	"path/filepath"
	"testing"
)

func TestManifestRecordsRunsAndSplits(t *testing.T) {
	t.Parallel()

	client, err := NewSQLiteClient(filepath.Join(t.TempDir(), "manifest.db"))
	if err != nil {
		t.Fatalf("NewSQLiteClient returned error: %v", err)
	}
	defer client.Close()

	runID, err := client.RecordRun("/data/recordings", 251)
	if err != nil {
		t.Fatalf("RecordRun returned error: %v", err)
	}
	if runID == 0 {
		t.Fatal("expected a non-zero run id")
	}

	for _, split := range []string{"TRAIN", "VALIDATE", "TEST"} {
		if err := client.RecordSplitStats(runID, split, 4, 120, 900, "/data/"+split+".features"); err != nil {
			t.Fatalf("RecordSplitStats(%s) returned error: %v", split, err)
		}
	}

	count, err := client.RunCount()
	if err != nil {
		t.Fatalf("RunCount returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded run, got %d", count)
	}
}
