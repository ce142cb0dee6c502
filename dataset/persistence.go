package dataset

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"orca-dataset/utils"
)

const backupSuffix = "-old"

var (
	// ErrInvalidSplit is returned when a save or load names a split kind
	// outside TRAIN/VALIDATE/TEST.
	ErrInvalidSplit = errors.New("invalid dataset split")

	// ErrMissingArtifact is returned when a load is requested before the
	// features artifact has been generated.
	ErrMissingArtifact = errors.New("features artifact not found, run prepare to generate datafiles first")
)

// FeatureStore persists one features artifact per split under a base
// directory. Overwriting keeps the previous artifact under a -old suffix as
// a single level of undo; a second save without cleanup replaces the backup.
type FeatureStore struct {
	dir string
}

// NewFeatureStore returns a store rooted at dir.
func NewFeatureStore(dir string) *FeatureStore {
	return &FeatureStore{dir: dir}
}

// Path returns the artifact path for a split, e.g. <dir>/TRAIN.features.
func (s *FeatureStore) Path(split SplitKind) string {
	return filepath.Join(s.dir, string(split)+".features")
}

// Exists reports whether a split's artifact is present on disk.
func (s *FeatureStore) Exists(split SplitKind) bool {
	_, err := os.Stat(s.Path(split))
	return err == nil
}

// Save serializes the full example sequence for one split, backing up any
// prior artifact first.
func (s *FeatureStore) Save(split SplitKind, examples []LabeledExample) error {
	if !split.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSplit, split)
	}
	if err := utils.CreateFolder(s.dir); err != nil {
		return err
	}

	path := s.Path(split)
	if err := backupDatafile(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(examples); err != nil {
		return fmt.Errorf("failed to serialize %s features: %w", split, err)
	}

	utils.GetLogger().Info("saved features artifact",
		"split", string(split),
		"examples", len(examples),
		"path", path)
	return nil
}

// Load reads a split's artifact back. Entries whose label appears in
// removeLabels are dropped; entries whose label appears in renameToOther are
// rewritten to the catch-all OtherLabel. Filtering happens here rather than
// at save time so one persisted artifact can serve different downstream
// class groupings. The returned feature and label slices are parallel.
func (s *FeatureStore) Load(split SplitKind, removeLabels, renameToOther []string) ([]FeatureExample, []string, error) {
	if !split.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidSplit, split)
	}

	path := s.Path(split)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingArtifact, path)
		}
		return nil, nil, err
	}
	defer f.Close()

	var entries []LabeledExample
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return nil, nil, fmt.Errorf("failed to deserialize %s: %w", path, err)
	}

	remove := toSet(removeLabels)
	other := toSet(renameToOther)

	features := make([]FeatureExample, 0, len(entries))
	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, drop := remove[entry.Label]; drop {
			continue
		}
		label := entry.Label
		if _, rename := other[label]; rename {
			label = OtherLabel
		}
		features = append(features, entry.Example)
		labels = append(labels, label)
	}

	utils.GetLogger().Info("loaded features artifact",
		"split", string(split),
		"examples", len(features),
		"path", path)
	return features, labels, nil
}

// backupDatafile renames path to path-old when it exists, providing one level
// of undo for the artifact about to be rewritten.
func backupDatafile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	renamed := path + backupSuffix
	if err := os.Rename(path, renamed); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}
	utils.GetLogger().Info("backed up previous artifact", "from", path, "to", renamed)
	return nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
