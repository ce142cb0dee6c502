package wav

// Resample converts samples from one rate to another using linear
// interpolation. Quality is sufficient for a log-mel front end; the mel
// filterbank smears far more detail than the interpolation loses.
func Resample(samples []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || fromRate <= 0 || toRate <= 0 || len(samples) == 0 {
		return samples
	}

	ratio := float64(toRate) / float64(fromRate)
	outputLen := int(float64(len(samples)) * ratio)
	if outputLen == 0 {
		return nil
	}

	output := make([]float64, outputLen)
	for i := range output {
		srcPos := float64(i) / ratio
		srcIdx := int(srcPos)
		frac := srcPos - float64(srcIdx)

		s0 := samples[srcIdx]
		s1 := s0
		if srcIdx+1 < len(samples) {
			s1 = samples[srcIdx+1]
		}
		output[i] = s0 + (s1-s0)*frac
	}
	return output
}
