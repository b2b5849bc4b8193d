package repositories

import (
	"errors"

	"influmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrInteractionNotFound = errors.New("interaction not found")

// Добавляем интерфейс InteractionRepository
type InteractionRepository interface {
	Create(interaction *models.Interaction) error
	LoadInteractions() ([]models.Interaction, error)
	FindByBrand(brandID string) ([]models.Interaction, error)

	SaveFeedback(feedback *models.MatchFeedback) error
	CountFeedbackByBrand(brandID string) (positive int64, total int64, err error)
}

type InteractionRepositoryImpl struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &InteractionRepositoryImpl{db: db}
}

func (r *InteractionRepositoryImpl) Create(interaction *models.Interaction) error {
	return r.db.Create(interaction).Error
}

// LoadInteractions возвращает всю историю в порядке создания —
// порядок важен для детерминированного обучения модели.
func (r *InteractionRepositoryImpl) LoadInteractions() ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := r.db.Order("id ASC").Find(&interactions).Error
	return interactions, err
}

func (r *InteractionRepositoryImpl) FindByBrand(brandID string) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := r.db.Where("brand_id = ?", brandID).Order("id ASC").Find(&interactions).Error
	return interactions, err
}

func (r *InteractionRepositoryImpl) SaveFeedback(feedback *models.MatchFeedback) error {
	return r.db.Create(feedback).Error
}

func (r *InteractionRepositoryImpl) CountFeedbackByBrand(brandID string) (int64, int64, error) {
	var total, positive int64
	base := r.db.Model(&models.MatchFeedback{}).Where("brand_id = ?", brandID)
	if err := base.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&models.MatchFeedback{}).
		Where("brand_id = ? AND feedback = ?", brandID, models.FeedbackPositive).
		Count(&positive).Error; err != nil {
		return 0, 0, err
	}
	return positive, total, nil
}
