package dataset

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"orca-dataset/utils"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeLabel strips every non-alphanumeric character from a raw folder
// name so labels are safe to use in filenames and encoder tables.
func SanitizeLabel(raw string) string {
	return nonAlphanumeric.ReplaceAllString(raw, "")
}

// Index walks root looking for *.wav files and maps each one to a label
// derived from its grandparent directory: root/SpermWhale/1985/x.wav carries
// the label "SpermWhale". Directories without audio files contribute nothing,
// and unreadable subtrees are skipped rather than failing the walk.
func Index(root string) (SampleCollection, error) {
	logger := utils.GetLogger()
	samples := SampleCollection{}
	totalFiles := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Debug("skipping unreadable entry", "path", path, "error", walkErr)
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".wav") {
			return nil
		}

		dir := filepath.Dir(path)
		label := SanitizeLabel(filepath.Base(filepath.Dir(dir)))
		if label == "" {
			logger.Debug("no label derivable, skipping file", "path", path)
			return nil
		}

		samples.Add(label, path)
		totalFiles++
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("indexed audio files",
		"root", root,
		"labels", len(samples),
		"files", totalFiles)
	return samples, nil
}
