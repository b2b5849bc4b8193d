package algorithms

import (
	"math"
	"sort"

	"influmatch_backend/internal/models"
)

// CreatorScore is one collaborative recommendation: the accumulated
// similarity-weighted rating plus its normalized (0-1) form used for
// blending downstream.
type CreatorScore struct {
	CreatorID  string
	Score      float64 // accumulated sum(similarity * rating)
	Normalized float64 // Score scaled into [0,1], order-preserving
}

// CollaborativeFilter holds the trained brand x creator interaction matrix
// and the derived brand-brand cosine similarity matrix. A trained filter is
// immutable: retraining builds a fresh one and the owner swaps the pointer.
type CollaborativeFilter struct {
	brands     []string
	creators   []string
	brandIdx   map[string]int
	creatorIdx map[string]int
	matrix     [][]float64 // brands x creators, historical interaction scores
	similarity [][]float64 // brands x brands, cosine
}

// TrainCollaborativeFilter builds the interaction matrix and the symmetric
// brand similarity matrix from the raw interaction feed. Brand and creator
// axes are ordered by first appearance, so identical input yields an
// identical model.
func TrainCollaborativeFilter(interactions []models.Interaction) *CollaborativeFilter {
	f := &CollaborativeFilter{
		brandIdx:   make(map[string]int),
		creatorIdx: make(map[string]int),
	}

	for _, interaction := range interactions {
		if _, ok := f.brandIdx[interaction.BrandID]; !ok {
			f.brandIdx[interaction.BrandID] = len(f.brands)
			f.brands = append(f.brands, interaction.BrandID)
		}
		if _, ok := f.creatorIdx[interaction.CreatorID]; !ok {
			f.creatorIdx[interaction.CreatorID] = len(f.creators)
			f.creators = append(f.creators, interaction.CreatorID)
		}
	}

	f.matrix = make([][]float64, len(f.brands))
	for i := range f.matrix {
		f.matrix[i] = make([]float64, len(f.creators))
	}
	for _, interaction := range interactions {
		row := f.brandIdx[interaction.BrandID]
		col := f.creatorIdx[interaction.CreatorID]
		f.matrix[row][col] = interaction.Score
	}

	f.similarity = make([][]float64, len(f.brands))
	for i := range f.similarity {
		f.similarity[i] = make([]float64, len(f.brands))
	}
	for i := 0; i < len(f.brands); i++ {
		for j := i; j < len(f.brands); j++ {
			sim := cosine(f.matrix[i], f.matrix[j])
			f.similarity[i][j] = sim
			f.similarity[j][i] = sim
		}
	}

	return f
}

// Brands returns the number of brands in the trained matrix.
func (f *CollaborativeFilter) Brands() int {
	return len(f.brands)
}

// Rating returns the historical interaction score for a pair, 0 if the pair
// never interacted or either side is unknown.
func (f *CollaborativeFilter) Rating(brandID, creatorID string) float64 {
	row, ok := f.brandIdx[brandID]
	if !ok {
		return 0
	}
	col, ok := f.creatorIdx[creatorID]
	if !ok {
		return 0
	}
	return f.matrix[row][col]
}

// Recommend scores creators the querying brand never engaged, weighting each
// similar brand's ratings by its cosine similarity. Creators the brand
// already rated nonzero are excluded. Results are sorted descending by
// accumulated score (stable: ties keep matrix order) and truncated to topK.
func (f *CollaborativeFilter) Recommend(brandID string, similarBrands, topK int) []CreatorScore {
	row, ok := f.brandIdx[brandID]
	if !ok {
		return nil
	}
	if similarBrands <= 0 {
		similarBrands = 5
	}

	// k most similar other brands, excluding self
	type brandSim struct {
		idx int
		sim float64
	}
	neighbors := make([]brandSim, 0, len(f.brands)-1)
	for i := range f.brands {
		if i == row || f.similarity[row][i] <= 0 {
			continue
		}
		neighbors = append(neighbors, brandSim{idx: i, sim: f.similarity[row][i]})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].sim > neighbors[j].sim
	})
	if len(neighbors) > similarBrands {
		neighbors = neighbors[:similarBrands]
	}
	if len(neighbors) == 0 {
		return nil
	}

	totalSim := 0.0
	for _, n := range neighbors {
		totalSim += n.sim
	}

	accumulated := make([]float64, len(f.creators))
	for _, n := range neighbors {
		for col, rating := range f.matrix[n.idx] {
			if rating == 0 {
				continue
			}
			if f.matrix[row][col] != 0 {
				continue // already engaged by the querying brand
			}
			accumulated[col] += n.sim * rating
		}
	}

	// нормировочная константа одна для всех креаторов - порядок сохраняется
	normalizer := totalSim * 100.0

	results := make([]CreatorScore, 0, len(f.creators))
	for col, score := range accumulated {
		if score <= 0 {
			continue
		}
		results = append(results, CreatorScore{
			CreatorID:  f.creators[col],
			Score:      score,
			Normalized: score / normalizer,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// cosine similarity of two equal-length vectors; two zero vectors give 0,
// never NaN.
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
