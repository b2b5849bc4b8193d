package algorithms

import (
	"testing"

	"influmatch_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interaction(brandID, creatorID string, score float64) models.Interaction {
	return models.Interaction{BrandID: brandID, CreatorID: creatorID, Score: score}
}

func TestRecommendExcludesEngagedCreators(t *testing.T) {
	// b1 и b2 похожи (оба высоко оценили c1); c2 знаком только b2
	filter := TrainCollaborativeFilter([]models.Interaction{
		interaction("b1", "c1", 90),
		interaction("b2", "c1", 85),
		interaction("b2", "c2", 80),
	})

	results := filter.Recommend("b1", 5, 10)
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.Zero(t, filter.Rating("b1", r.CreatorID),
			"recommended creator %s is already engaged by b1", r.CreatorID)
	}
	assert.Equal(t, "c2", results[0].CreatorID)
}

func TestRecommendRanksByAccumulatedScore(t *testing.T) {
	filter := TrainCollaborativeFilter([]models.Interaction{
		interaction("b1", "c1", 90),
		interaction("b2", "c1", 85),
		interaction("b2", "c2", 40),
		interaction("b2", "c3", 95),
	})

	results := filter.Recommend("b1", 5, 10)
	require.Len(t, results, 2)

	assert.Equal(t, "c3", results[0].CreatorID)
	assert.Equal(t, "c2", results[1].CreatorID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	for _, r := range results {
		assert.Greater(t, r.Normalized, 0.0)
		assert.LessOrEqual(t, r.Normalized, 1.0)
	}
}

func TestRecommendTopKTruncation(t *testing.T) {
	filter := TrainCollaborativeFilter([]models.Interaction{
		interaction("b1", "c1", 90),
		interaction("b2", "c1", 85),
		interaction("b2", "c2", 70),
		interaction("b2", "c3", 60),
		interaction("b2", "c4", 50),
	})

	results := filter.Recommend("b1", 5, 2)
	assert.Len(t, results, 2)
}

func TestRecommendUnknownBrand(t *testing.T) {
	filter := TrainCollaborativeFilter([]models.Interaction{
		interaction("b1", "c1", 90),
	})
	assert.Nil(t, filter.Recommend("ghost", 5, 10))
}

func TestCosineZeroVectors(t *testing.T) {
	assert.Zero(t, cosine([]float64{0, 0, 0}, []float64{0, 0, 0}))
	assert.Zero(t, cosine([]float64{1, 2, 3}, []float64{0, 0, 0}))
	assert.InDelta(t, 1.0, cosine([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
}

func TestDissimilarBrandsProduceNoRecommendations(t *testing.T) {
	// b1 и b2 не пересекаются ни по одному креатору: сходство 0
	filter := TrainCollaborativeFilter([]models.Interaction{
		interaction("b1", "c1", 90),
		interaction("b2", "c2", 80),
	})
	assert.Empty(t, filter.Recommend("b1", 5, 10))
}

func TestTrainIsDeterministic(t *testing.T) {
	interactions := []models.Interaction{
		interaction("b1", "c1", 90),
		interaction("b2", "c1", 85),
		interaction("b2", "c2", 80),
		interaction("b3", "c1", 70),
		interaction("b3", "c3", 60),
	}

	first := TrainCollaborativeFilter(interactions).Recommend("b1", 5, 10)
	second := TrainCollaborativeFilter(interactions).Recommend("b1", 5, 10)
	assert.Equal(t, first, second)
}
