package repositories

import (
	"errors"

	"influmatch_backend/internal/models"
	"influmatch_backend/internal/services/dto"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrCreatorNotFound      = errors.New("creator profile not found")
	ErrBrandNotFound        = errors.New("brand profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
)

// Добавляем интерфейс ProfileRepository
type ProfileRepository interface {
	// CreatorProfile operations
	CreateCreatorProfile(profile *models.CreatorProfile) error
	FindCreatorByID(id string) (*models.CreatorProfile, error)
	UpdateCreatorProfile(profile *models.CreatorProfile) error
	DeactivateCreatorProfile(id string) error
	ListActiveCreators() ([]models.CreatorProfile, error)
	ListCandidates(criteria *dto.MatchingCriteria) ([]models.CreatorProfile, error)
	FindCreatorsByCategory(category string) ([]models.CreatorProfile, error)

	// BrandProfile operations
	CreateBrandProfile(profile *models.BrandProfile) error
	FindBrandByID(id string) (*models.BrandProfile, error)
	UpdateBrandProfile(profile *models.BrandProfile) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

// CreatorProfile operations

func (r *ProfileRepositoryImpl) CreateCreatorProfile(profile *models.CreatorProfile) error {
	var existing models.CreatorProfile
	if err := r.db.Where("id = ?", profile.ID).First(&existing).Error; err == nil {
		return ErrProfileAlreadyExists
	}
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindCreatorByID(id string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateCreatorProfile(profile *models.CreatorProfile) error {
	result := r.db.Model(&models.CreatorProfile{}).Where("id = ?", profile.ID).Updates(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreatorNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) DeactivateCreatorProfile(id string) error {
	result := r.db.Model(&models.CreatorProfile{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreatorNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) ListActiveCreators() ([]models.CreatorProfile, error) {
	var profiles []models.CreatorProfile
	err := r.db.Where("is_active = ?", true).Find(&profiles).Error
	return profiles, err
}

// ListCandidates выполняет фильтрацию по плоским колонкам на стороне БД.
// Требования, живущие внутри JSONB-профилей (подписчики, вовлечённость,
// верификация), проверяются в памяти после выборки.
func (r *ProfileRepositoryImpl) ListCandidates(criteria *dto.MatchingCriteria) ([]models.CreatorProfile, error) {
	query := r.db.Model(&models.CreatorProfile{}).Where("is_active = ?", true)

	if criteria != nil {
		if len(criteria.Preferences.Categories) > 0 {
			query = query.Where("categories && ?", pq.StringArray(criteria.Preferences.Categories))
		}
		if len(criteria.Preferences.Languages) > 0 {
			query = query.Where("languages && ?", pq.StringArray(criteria.Preferences.Languages))
		}
		if len(criteria.Preferences.Locations) > 0 {
			query = query.Where("locations && ?", pq.StringArray(criteria.Preferences.Locations))
		}
	}

	var profiles []models.CreatorProfile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}

	if criteria == nil {
		return profiles, nil
	}

	filtered := make([]models.CreatorProfile, 0, len(profiles))
	for i := range profiles {
		if matchesRequirements(&profiles[i], &criteria.Requirements) {
			filtered = append(filtered, profiles[i])
		}
	}
	return filtered, nil
}

func matchesRequirements(creator *models.CreatorProfile, req *dto.Requirements) bool {
	followers := creator.TotalFollowers()
	if req.MinFollowers > 0 && followers < req.MinFollowers {
		return false
	}
	if req.MaxFollowers > 0 && followers > req.MaxFollowers {
		return false
	}
	if req.MinEngagementRate > 0 && creator.AverageEngagementRate() < req.MinEngagementRate {
		return false
	}
	if req.MinAudienceQuality > 0 && creator.GetAudience().QualityScore < req.MinAudienceQuality {
		return false
	}
	if req.VerifiedOnly {
		verified := false
		for _, p := range creator.GetPlatforms() {
			if p.Verified {
				verified = true
				break
			}
		}
		if !verified {
			return false
		}
	}
	return true
}

func (r *ProfileRepositoryImpl) FindCreatorsByCategory(category string) ([]models.CreatorProfile, error) {
	var profiles []models.CreatorProfile
	err := r.db.Where("is_active = ? AND ? = ANY(categories)", true, category).Find(&profiles).Error
	return profiles, err
}

// BrandProfile operations

func (r *ProfileRepositoryImpl) CreateBrandProfile(profile *models.BrandProfile) error {
	var existing models.BrandProfile
	if err := r.db.Where("id = ?", profile.ID).First(&existing).Error; err == nil {
		return ErrProfileAlreadyExists
	}
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindBrandByID(id string) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateBrandProfile(profile *models.BrandProfile) error {
	result := r.db.Model(&models.BrandProfile{}).Where("id = ?", profile.ID).Updates(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBrandNotFound
	}
	return nil
}
