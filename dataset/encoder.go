package dataset

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"orca-dataset/utils"
)

// LabelEncoder is a bijection between label strings and contiguous integer
// ids in [0, NumClasses). Ids are assigned by lexicographic order of the
// class names, so the same class set always yields the same encoding no
// matter the order it was observed in.
type LabelEncoder struct {
	Classes []string

	index map[string]int
}

// FitLabelEncoder builds an encoder over the distinct labels in classes.
func FitLabelEncoder(classes []string) *LabelEncoder {
	seen := make(map[string]struct{}, len(classes))
	var distinct []string
	for _, class := range classes {
		if _, ok := seen[class]; ok {
			continue
		}
		seen[class] = struct{}{}
		distinct = append(distinct, class)
	}
	sort.Strings(distinct)

	encoder := &LabelEncoder{Classes: distinct}
	encoder.rebuildIndex()
	return encoder
}

// NumClasses returns the number of encoded classes.
func (e *LabelEncoder) NumClasses() int {
	return len(e.Classes)
}

// Transform maps labels to their integer ids.
func (e *LabelEncoder) Transform(labels []string) ([]int, error) {
	ids := make([]int, len(labels))
	for i, label := range labels {
		id, ok := e.index[label]
		if !ok {
			return nil, fmt.Errorf("label %q was not seen during fitting", label)
		}
		ids[i] = id
	}
	return ids, nil
}

// OneHot encodes labels as a (numSamples x NumClasses) matrix with a single
// 1 per row at the label's id.
func (e *LabelEncoder) OneHot(labels []string) ([][]float64, error) {
	ids, err := e.Transform(labels)
	if err != nil {
		return nil, err
	}
	matrix := make([][]float64, len(ids))
	for i, id := range ids {
		row := make([]float64, e.NumClasses())
		row[id] = 1
		matrix[i] = row
	}
	return matrix, nil
}

// Save persists the encoder twice under dir: a gob-restorable object
// label_encoder_<runTimestamp>.p and a human-readable CSV id/label table.
// Both get a label_encoder_latest.* alias pointing at this run's files,
// replacing any prior alias.
func (e *LabelEncoder) Save(dir, runTimestamp string) error {
	logger := utils.GetLogger()
	if err := utils.CreateFolder(dir); err != nil {
		return err
	}

	gobPath := filepath.Join(dir, fmt.Sprintf("label_encoder_%s.p", runTimestamp))
	f, err := os.Create(gobPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", gobPath, err)
	}
	if err := gob.NewEncoder(f).Encode(e.Classes); err != nil {
		f.Close()
		return fmt.Errorf("failed to serialize label encoder: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("saved label encoder", "path", gobPath)

	csvPath := filepath.Join(dir, fmt.Sprintf("label_encoder_%s.csv", runTimestamp))
	if err := e.writeTable(csvPath); err != nil {
		return err
	}
	logger.Info("saved label encoder table", "path", csvPath)

	if err := utils.CreateOrReplaceSymlink(gobPath, filepath.Join(dir, "label_encoder_latest.p")); err != nil {
		return fmt.Errorf("failed to update latest encoder alias: %w", err)
	}
	if err := utils.CreateOrReplaceSymlink(csvPath, filepath.Join(dir, "label_encoder_latest.csv")); err != nil {
		return fmt.Errorf("failed to update latest encoder table alias: %w", err)
	}
	return nil
}

// writeTable emits the id/label CSV with an encoded_id,label header.
func (e *LabelEncoder) writeTable(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"encoded_id", "label"}); err != nil {
		return err
	}
	for id, label := range e.Classes {
		if err := w.Write([]string{strconv.Itoa(id), label}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadLabelEncoder restores an encoder from its gob artifact. Passing the
// label_encoder_latest.p alias resolves the most recently fitted encoding.
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var classes []string
	if err := gob.NewDecoder(f).Decode(&classes); err != nil {
		return nil, fmt.Errorf("failed to deserialize label encoder from %s: %w", path, err)
	}

	encoder := &LabelEncoder{Classes: classes}
	encoder.rebuildIndex()
	return encoder, nil
}

// LatestEncoderPath returns the path of the "latest" encoder alias under dir.
func LatestEncoderPath(dir string) string {
	return filepath.Join(dir, "label_encoder_latest.p")
}

func (e *LabelEncoder) rebuildIndex() {
	e.index = make(map[string]int, len(e.Classes))
	for id, class := range e.Classes {
		e.index[class] = id
	}
}
