package dataset

import (
	"fmt"

	"orca-dataset/utils"
	"orca-dataset/wav"
)

// Quantize cuts one audio file into non-overlapping SegmentRefs of
// segmentSeconds length at the file's native sample rate. Only the WAV header
// is read; no audio is materialized here.
//
// Files not longer than one segment yield nothing. Otherwise a ref is
// generated for every start offset below the total frame count and the last
// generated ref is then dropped unconditionally: the trailing ref is the one
// that may run short, and it is discarded by position rather than by checking
// its true length.
//
// maxSeconds is reserved for filtering overlong source files and currently
// has no effect.
func Quantize(label, path string, segmentSeconds, maxSeconds float64) ([]SegmentRef, error) {
	meta, err := wav.ReadMetadata(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata for %s: %w", path, err)
	}

	segmentFrames := int(segmentSeconds * float64(meta.SampleRate))
	if segmentFrames <= 0 {
		return nil, fmt.Errorf("segment length %.2fs too short at %d Hz", segmentSeconds, meta.SampleRate)
	}
	if meta.TotalFrames <= segmentFrames {
		return nil, nil
	}

	var refs []SegmentRef
	for start := 0; start < meta.TotalFrames; start += segmentFrames {
		refs = append(refs, SegmentRef{
			Label:      label,
			Source:     path,
			StartFrame: start,
			FrameCount: segmentFrames,
		})
	}

	// drop the trailing segment, which would be shorter than a full window
	return refs[:len(refs)-1], nil
}

// QuantizeAll flattens per-file quantization across a whole split. Files
// whose headers cannot be read are logged and skipped so one corrupt
// recording does not abort the split.
func QuantizeAll(files []LabeledFile, segmentSeconds, maxSeconds float64) []SegmentRef {
	logger := utils.GetLogger()
	var refs []SegmentRef
	for _, file := range files {
		fileRefs, err := Quantize(file.Label, file.Path, segmentSeconds, maxSeconds)
		if err != nil {
			logger.Warn("skipping unreadable audio file", "path", file.Path, "error", err)
			continue
		}
		refs = append(refs, fileRefs...)
	}

	logger.Info("quantized audio segments", "segments", len(refs), "files", len(files))
	return refs
}
