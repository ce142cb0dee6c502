package main

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"orca-dataset/dataset"
	"orca-dataset/db"
	"orca-dataset/utils"
)

// prepare runs the full pipeline for all three splits: index the directory
// tree, stratify into train/validate/test, quantize every file into segments,
// extract log-mel examples, and persist one artifact per split. Unless
// overwrite is set, a run where all three artifacts already exist returns
// immediately so repeated invocations are cheap.
//
// Label one-hot encoding is not done here, nor is grouping of undesired
// classes into "Other"; both happen when the artifacts are loaded.
func prepare(dataDir, outDir string, overwrite bool, seed int64) error {
	logger := utils.GetLogger()
	store := dataset.NewFeatureStore(outDir)

	if !overwrite && allArtifactsExist(store) {
		logger.Info("all features artifacts already exist, skipping generation", "dir", outDir)
		return nil
	}

	samples, err := dataset.Index(dataDir)
	if err != nil {
		return err
	}

	splitter := dataset.NewSplitter(rand.New(rand.NewSource(seed)))
	splits := splitter.Split(samples, dataset.TrainFraction, dataset.ValidateFraction)

	manifest := openManifest()
	var runID int64
	if manifest != nil {
		defer manifest.Close()
		runID, err = manifest.RecordRun(dataDir, seed)
		if err != nil {
			utils.LogError(context.Background(), "failed to record run manifest", err)
			manifest = nil
		}
	}

	extractor := dataset.NewExtractor()
	for _, split := range dataset.Splits {
		collection := splits[split]
		files := collection.Flatten()
		refs := dataset.QuantizeAll(files, dataset.SegmentSeconds, dataset.MaxSegmentSeconds)

		logger.Info("extracting features",
			"split", string(split),
			"segments", len(refs),
			"files", len(files))

		examples, err := extractor.ExtractAll(refs)
		if err != nil {
			return err
		}
		if err := store.Save(split, examples); err != nil {
			return err
		}

		if manifest != nil {
			err := manifest.RecordSplitStats(runID, string(split),
				len(collection), len(files), len(refs), store.Path(split))
			if err != nil {
				utils.LogError(context.Background(), "failed to record split stats", err)
			}
		}
	}

	logger.Info("done extracting features", "dir", outDir)
	return nil
}

// encodeLabels fits a label encoding over every label observed across the
// persisted splits (after REMOVE_CLASSES / OTHER_CLASSES grouping) and
// persists it with this run's timestamp plus the latest aliases.
func encodeLabels(featuresDir, outDir string) error {
	logger := utils.GetLogger()
	store := dataset.NewFeatureStore(featuresDir)

	removeClasses := envList("REMOVE_CLASSES")
	otherClasses := envList("OTHER_CLASSES")

	seen := map[string]struct{}{}
	var classes []string
	for _, split := range dataset.Splits {
		_, labels, err := store.Load(split, removeClasses, otherClasses)
		if err != nil {
			return err
		}
		for _, label := range labels {
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			classes = append(classes, label)
		}
	}

	encoder := dataset.FitLabelEncoder(classes)
	runTimestamp := time.Now().Format("20060102-150405")
	if err := encoder.Save(outDir, runTimestamp); err != nil {
		return err
	}

	logger.Info("fitted label encoding",
		"classes", encoder.NumClasses(),
		"run", runTimestamp,
		"dir", outDir)
	return nil
}

func allArtifactsExist(store *dataset.FeatureStore) bool {
	for _, split := range dataset.Splits {
		if !store.Exists(split) {
			return false
		}
	}
	return true
}

// openManifest connects to the optional run manifest database. Manifest
// recording is best effort and never fails the pipeline.
func openManifest() *db.SQLiteClient {
	dsn := utils.GetEnv("DATASET_DB", "")
	if dsn == "" {
		return nil
	}
	client, err := db.NewSQLiteClient(dsn)
	if err != nil {
		utils.LogError(context.Background(), "failed to open manifest database", err)
		return nil
	}
	return client
}

// envList parses a comma-separated environment variable into a string list,
// dropping empty entries.
func envList(key string) []string {
	raw := utils.GetEnv(key, "")
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
