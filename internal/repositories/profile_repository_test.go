package repositories

import (
	"testing"

	"influmatch_backend/internal/models"
	"influmatch_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
)

func candidateProfile(followers int64, engagement, audienceQuality float64, verified bool) *models.CreatorProfile {
	creator := &models.CreatorProfile{}
	creator.ID = "c1"
	creator.IsActive = true
	creator.SetPlatforms([]models.PlatformPresence{{
		Platform:       "instagram",
		Followers:      followers,
		EngagementRate: engagement,
		Verified:       verified,
	}})
	creator.SetAudience(models.AudienceProfile{
		QualityScore: audienceQuality,
	})
	return creator
}

func TestMatchesRequirementsFollowerBounds(t *testing.T) {
	creator := candidateProfile(50000, 5.0, 75, true)

	assert.True(t, matchesRequirements(creator, &dto.Requirements{MinFollowers: 10000, MaxFollowers: 100000}))
	assert.False(t, matchesRequirements(creator, &dto.Requirements{MinFollowers: 60000}))
	assert.False(t, matchesRequirements(creator, &dto.Requirements{MaxFollowers: 40000}))

	// нулевые границы не фильтруют
	assert.True(t, matchesRequirements(creator, &dto.Requirements{}))
}

func TestMatchesRequirementsEngagementAndVerification(t *testing.T) {
	creator := candidateProfile(50000, 2.0, 75, false)

	assert.False(t, matchesRequirements(creator, &dto.Requirements{MinEngagementRate: 3.0}))
	assert.False(t, matchesRequirements(creator, &dto.Requirements{VerifiedOnly: true}))

	verified := candidateProfile(50000, 4.0, 75, true)
	assert.True(t, matchesRequirements(verified, &dto.Requirements{MinEngagementRate: 3.0, VerifiedOnly: true}))
}

func TestMatchesRequirementsAudienceQuality(t *testing.T) {
	lowQuality := candidateProfile(50000, 5.0, 40, true)
	highQuality := candidateProfile(50000, 5.0, 85, true)

	req := &dto.Requirements{MinAudienceQuality: 60}
	assert.False(t, matchesRequirements(lowQuality, req))
	assert.True(t, matchesRequirements(highQuality, req))

	// без порога качество аудитории не проверяется
	assert.True(t, matchesRequirements(lowQuality, &dto.Requirements{}))
}
