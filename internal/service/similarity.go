package service

import "math"

// Weights of the two signals in the overall compatibility score.
const (
	EmbeddingWeight = 0.40
	SkillsWeight    = 0.60
)

// Match level labels shown in compatibility reports.
const (
	MatchLevelExcellent = "Отличное совпадение"
	MatchLevelGood      = "Хорошее совпадение"
	MatchLevelModerate  = "Удовлетворительное совпадение"
	MatchLevelPoor      = "Плохое совпадение"
)

// CosineSimilarity returns the cosine of the angle between a and b.
// Mismatched lengths and zero-magnitude vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CalibrateSimilarity maps raw cosine similarity onto a steeper piecewise
// linear curve. Embedding models cluster most pairs in a narrow high band,
// so the curve stretches the top of the range and compresses the bottom.
func CalibrateSimilarity(raw float64) float64 {
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}

	var calibrated float64
	switch {
	case raw >= 0.95:
		calibrated = 0.85 + (raw-0.95)*3.0
	case raw >= 0.85:
		calibrated = 0.70 + (raw-0.85)*1.5
	case raw >= 0.75:
		calibrated = 0.55 + (raw-0.75)*1.5
	case raw >= 0.65:
		calibrated = 0.40 + (raw-0.65)*1.5
	default:
		calibrated = raw * 0.6
	}

	if calibrated > 1 {
		calibrated = 1
	}
	if calibrated < 0 {
		calibrated = 0
	}
	return calibrated
}

// OverallScore blends calibrated embedding similarity (0..1) with the skills
// match percentage (0..100) into a 0..100 score.
func OverallScore(similarity, skillsPercent float64) float64 {
	score := similarity*100*EmbeddingWeight + skillsPercent*SkillsWeight
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func MatchLevelFromScore(score float64) string {
	switch {
	case score >= 80:
		return MatchLevelExcellent
	case score >= 65:
		return MatchLevelGood
	case score >= 45:
		return MatchLevelModerate
	default:
		return MatchLevelPoor
	}
}
