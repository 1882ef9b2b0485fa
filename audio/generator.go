package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/oasis/core"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples
func oscillator(waveType int, freq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(sampleRate)

	for i := range buf {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = rand.Float64()*2 - 1
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, attack, release time.Duration) {
	total := len(buf)
	attackSamples := sampleRate.N(attack)
	releaseSamples := sampleRate.N(release)

	releaseStart := max(total-releaseSamples, attackSamples)

	for i := range buf {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// concatFloatBuffers appends the parts in order
func concatFloatBuffers(parts ...floatBuffer) floatBuffer {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	result := make(floatBuffer, 0, n)
	for _, p := range parts {
		result = append(result, p...)
	}
	return result
}

func tone(wave int, freq float64, d, attack, release time.Duration) floatBuffer {
	buf := oscillator(wave, freq, sampleRate.N(d))
	applyEnvelope(buf, attack, release)
	return buf
}

// --- Cue generators (unity gain) ---

func generateStep() floatBuffer {
	return tone(waveNoise, 0, stepDuration, 2*time.Millisecond, 30*time.Millisecond)
}

func generateCollision() floatBuffer {
	return tone(waveSaw, 100.0, collisionDuration, collisionAttack, collisionRelease)
}

func generateWhoosh() floatBuffer {
	return tone(waveNoise, 0, whooshDuration, whooshAttack, whooshRelease)
}

func generateTarget() floatBuffer {
	// A5 with a quieter A6 overtone
	fund := tone(waveSine, 880.0, targetDuration, targetAttack, targetDuration*3/4)
	over := tone(waveSine, 1760.0, targetDuration, targetAttack, targetDuration/3)
	return mixFloatBuffers(fund, over, 0.3/0.7)
}

func generateFinish() floatBuffer {
	// Rising major arpeggio C6 E6 G6 C7
	notes := []float64{1046.50, 1318.51, 1567.98, 2093.00}
	parts := make([]floatBuffer, 0, len(notes))
	for i, f := range notes {
		d := finishNote
		if i == len(notes)-1 {
			d *= 3
		}
		parts = append(parts, tone(waveSquare, f, d, 2*time.Millisecond, d/2))
	}
	return concatFloatBuffers(parts...)
}

func generateTheme() floatBuffer {
	// Phrygian dominant motif on D
	notes := []float64{293.66, 311.13, 369.99, 392.00, 440.00, 392.00, 369.99, 311.13}
	parts := make([]floatBuffer, 0, len(notes))
	for _, f := range notes {
		n := tone(waveSine, f, themeNote, 20*time.Millisecond, themeNote/2)
		drone := tone(waveSine, 146.83, themeNote, 20*time.Millisecond, 20*time.Millisecond)
		parts = append(parts, mixFloatBuffers(n, drone, 0.4))
	}
	return concatFloatBuffers(parts...)
}

// generateCue dispatches to the specific generator
func generateCue(cue string) floatBuffer {
	switch cue {
	case core.CueTheme:
		return generateTheme()
	case core.CueStep:
		return generateStep()
	case core.CueCollision:
		return generateCollision()
	case core.CueWhoosh:
		return generateWhoosh()
	case core.CueTarget:
		return generateTarget()
	case core.CueFinish:
		return generateFinish()
	default:
		return nil
	}
}
