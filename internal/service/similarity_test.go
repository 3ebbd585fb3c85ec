package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}

	assert.InDelta(t, 1.0, CosineSimilarity(a, a), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-9)
}

func TestCosineSimilarityDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestCalibrateSimilarityBreakpoints(t *testing.T) {
	assert.InDelta(t, 1.00, CalibrateSimilarity(1.00), 1e-9)
	assert.InDelta(t, 0.85, CalibrateSimilarity(0.95), 1e-9)
	assert.InDelta(t, 0.70, CalibrateSimilarity(0.85), 1e-9)
	assert.InDelta(t, 0.55, CalibrateSimilarity(0.75), 1e-9)
	assert.InDelta(t, 0.40, CalibrateSimilarity(0.65), 1e-9)
	assert.InDelta(t, 0.30, CalibrateSimilarity(0.50), 1e-9)
}

func TestCalibrateSimilarityClampsAndStaysMonotonic(t *testing.T) {
	assert.Equal(t, 0.0, CalibrateSimilarity(-0.4))
	assert.Equal(t, 1.0, CalibrateSimilarity(1.7))

	prev := -1.0
	for raw := 0.0; raw <= 1.0; raw += 0.01 {
		calibrated := CalibrateSimilarity(raw)
		assert.GreaterOrEqual(t, calibrated, prev, "calibration must be monotonic at raw=%.2f", raw)
		assert.GreaterOrEqual(t, calibrated, 0.0)
		assert.LessOrEqual(t, calibrated, 1.0)
		prev = calibrated
	}
}

func TestOverallScore(t *testing.T) {
	assert.InDelta(t, 100.0, OverallScore(1.0, 100), 1e-9)
	assert.InDelta(t, 0.0, OverallScore(0, 0), 1e-9)

	// 0.775 similarity and 85% skills: 31 + 51.
	assert.InDelta(t, 82.0, OverallScore(0.775, 85), 1e-9)
}

func TestScoringPipelineStrongCandidate(t *testing.T) {
	calibrated := CalibrateSimilarity(0.9)
	assert.InDelta(t, 0.775, calibrated, 1e-9)

	overall := OverallScore(calibrated, 90)
	assert.InDelta(t, 85.0, overall, 1e-9)

	assert.Equal(t, MatchLevelExcellent, MatchLevelFromScore(overall))
}

func TestMatchLevelFromScore(t *testing.T) {
	assert.Equal(t, MatchLevelExcellent, MatchLevelFromScore(80))
	assert.Equal(t, MatchLevelGood, MatchLevelFromScore(65))
	assert.Equal(t, MatchLevelGood, MatchLevelFromScore(79.9))
	assert.Equal(t, MatchLevelModerate, MatchLevelFromScore(45))
	assert.Equal(t, MatchLevelPoor, MatchLevelFromScore(44.9))
	assert.Equal(t, MatchLevelPoor, MatchLevelFromScore(0))
}
