package mel

// Log-mel spectrogram front end.
//
// Processing steps:
// 1. Slice the waveform into Hann-windowed frames (WindowSeconds long,
//    HopSeconds apart).
// 2. Real FFT per frame (gonum dsp/fourier), magnitude spectrum.
// 3. Project magnitudes onto a triangular mel filterbank spanning
//    [MinHz, MaxHz].
// 4. log(mel + LogOffset) to compress dynamic range.
//
// The output is a [time][band] matrix. Input shorter than one STFT window
// produces an empty matrix; callers decide what an empty spectrogram means.

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Config controls spectrogram extraction parameters.
type Config struct {
	SampleRate    int     // waveform sample rate in Hz
	WindowSeconds float64 // STFT window length
	HopSeconds    float64 // STFT hop length
	Bands         int     // number of mel bands
	MinHz         float64 // lower edge of the mel filterbank
	MaxHz         float64 // upper edge of the mel filterbank
	LogOffset     float64 // additive offset before the log
}

// FramesPerSecond returns the frame rate of the spectrogram time axis.
func (c Config) FramesPerSecond() float64 {
	return 1.0 / c.HopSeconds
}

// LogMelSpectrogram converts a mono waveform into a [time][band] log-mel
// matrix using the given configuration.
func LogMelSpectrogram(samples []float64, cfg Config) [][]float64 {
	windowLen := int(math.Round(cfg.WindowSeconds * float64(cfg.SampleRate)))
	hopLen := int(math.Round(cfg.HopSeconds * float64(cfg.SampleRate)))
	if windowLen <= 0 || hopLen <= 0 || len(samples) < windowLen {
		return [][]float64{}
	}

	fftSize := nextPowerOfTwo(windowLen)
	numFrames := 1 + (len(samples)-windowLen)/hopLen
	numBins := fftSize/2 + 1

	window := hannWindow(windowLen)
	filterbank := melFilterbank(cfg.Bands, numBins, fftSize, cfg.SampleRate, cfg.MinHz, cfg.MaxHz)
	fft := fourier.NewFFT(fftSize)

	buffer := make([]float64, fftSize)
	magnitude := make([]float64, numBins)
	result := make([][]float64, numFrames)

	for frame := 0; frame < numFrames; frame++ {
		offset := frame * hopLen
		for i := 0; i < windowLen; i++ {
			buffer[i] = samples[offset+i] * window[i]
		}
		for i := windowLen; i < fftSize; i++ {
			buffer[i] = 0
		}

		coeffs := fft.Coefficients(nil, buffer)
		for i := 0; i < numBins; i++ {
			re := real(coeffs[i])
			im := imag(coeffs[i])
			magnitude[i] = math.Sqrt(re*re + im*im)
		}

		bands := make([]float64, cfg.Bands)
		for b := 0; b < cfg.Bands; b++ {
			var energy float64
			for i, weight := range filterbank[b] {
				energy += magnitude[i] * weight
			}
			bands[b] = math.Log(energy + cfg.LogOffset)
		}
		result[frame] = bands
	}

	return result
}

// Frame slices the time axis of a spectrogram into fixed-length windows with
// the given stride. Input shorter than windowLength yields no windows.
func Frame(matrix [][]float64, windowLength, hopLength int) [][][]float64 {
	if windowLength <= 0 || hopLength <= 0 || len(matrix) < windowLength {
		return nil
	}
	numWindows := 1 + (len(matrix)-windowLength)/hopLength
	windows := make([][][]float64, numWindows)
	for w := 0; w < numWindows; w++ {
		start := w * hopLength
		windows[w] = matrix[start : start+windowLength]
	}
	return windows
}

// hertzToMel maps a frequency in Hz onto the HTK mel scale.
func hertzToMel(hz float64) float64 {
	return 1127.0 * math.Log(1.0+hz/700.0)
}

// melFilterbank builds a matrix of triangular filters, one row per band, with
// one weight per spectrogram bin.
func melFilterbank(bands, numBins, fftSize, sampleRate int, minHz, maxHz float64) [][]float64 {
	minMel := hertzToMel(minHz)
	maxMel := hertzToMel(maxHz)

	// band edge b covers [edges[b], edges[b+2]] with its peak at edges[b+1]
	edges := make([]float64, bands+2)
	for i := range edges {
		edges[i] = minMel + (maxMel-minMel)*float64(i)/float64(bands+1)
	}

	binMels := make([]float64, numBins)
	for i := range binMels {
		binMels[i] = hertzToMel(float64(i) * float64(sampleRate) / float64(fftSize))
	}

	filterbank := make([][]float64, bands)
	for b := 0; b < bands; b++ {
		lower, center, upper := edges[b], edges[b+1], edges[b+2]
		row := make([]float64, numBins)
		for i, m := range binMels {
			var weight float64
			if m > lower && m < upper {
				if m <= center {
					weight = (m - lower) / (center - lower)
				} else {
					weight = (upper - m) / (upper - center)
				}
			}
			row[i] = weight
		}
		// the DC bin carries no mel energy
		row[0] = 0
		filterbank[b] = row
	}
	return filterbank
}

func hannWindow(length int) []float64 {
	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(length-1)))
	}
	return window
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
