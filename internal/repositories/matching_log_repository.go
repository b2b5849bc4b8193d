package repositories

import (
	"errors"
	"time"

	"influmatch_backend/internal/models"
	"influmatch_backend/internal/services/dto"

	"gorm.io/gorm"
)

var ErrMatchLogNotFound = errors.New("matching log not found")

// BrandMatchStats — агрегаты по журналу матчей одного бренда.
type BrandMatchStats struct {
	TotalMatches int64
	AverageScore float64
}

// Добавляем интерфейс MatchingLogRepository
type MatchingLogRepository interface {
	Create(entry *models.MatchingLog) error
	CreateBatch(entries []models.MatchingLog) error
	FindByID(id string) (*models.MatchingLog, error)
	Search(criteria dto.MatchingLogCriteria) ([]models.MatchingLog, int64, error)
	StatsByBrand(brandID string) (*BrandMatchStats, error)
	TopCreatorsByBrand(brandID string, limit int) ([]string, error)
}

type MatchingLogRepositoryImpl struct {
	db *gorm.DB
}

func NewMatchingLogRepository(db *gorm.DB) MatchingLogRepository {
	return &MatchingLogRepositoryImpl{db: db}
}

func (r *MatchingLogRepositoryImpl) Create(entry *models.MatchingLog) error {
	return r.db.Create(entry).Error
}

func (r *MatchingLogRepositoryImpl) CreateBatch(entries []models.MatchingLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

func (r *MatchingLogRepositoryImpl) FindByID(id string) (*models.MatchingLog, error) {
	var entry models.MatchingLog
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchLogNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *MatchingLogRepositoryImpl) Search(criteria dto.MatchingLogCriteria) ([]models.MatchingLog, int64, error) {
	query := r.db.Model(&models.MatchingLog{})

	if criteria.BrandID != "" {
		query = query.Where("brand_id = ?", criteria.BrandID)
	}
	if criteria.CreatorID != "" {
		query = query.Where("creator_id = ?", criteria.CreatorID)
	}
	if criteria.MinScore > 0 {
		query = query.Where("score >= ?", criteria.MinScore)
	}
	if !criteria.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", criteria.DateFrom)
	}
	if !criteria.DateTo.IsZero() {
		query = query.Where("created_at <= ?", criteria.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var entries []models.MatchingLog
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *MatchingLogRepositoryImpl) StatsByBrand(brandID string) (*BrandMatchStats, error) {
	stats := &BrandMatchStats{}

	if err := r.db.Model(&models.MatchingLog{}).
		Where("brand_id = ?", brandID).
		Count(&stats.TotalMatches).Error; err != nil {
		return nil, err
	}
	if stats.TotalMatches == 0 {
		return stats, nil
	}
	if err := r.db.Model(&models.MatchingLog{}).
		Where("brand_id = ?", brandID).
		Select("AVG(score)").
		Scan(&stats.AverageScore).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// TopCreatorsByBrand возвращает креаторов с лучшим средним счётом за последние 90 дней.
func (r *MatchingLogRepositoryImpl) TopCreatorsByBrand(brandID string, limit int) ([]string, error) {
	if limit < 1 {
		limit = 5
	}
	since := time.Now().AddDate(0, 0, -90)

	var creatorIDs []string
	err := r.db.Model(&models.MatchingLog{}).
		Where("brand_id = ? AND created_at >= ?", brandID, since).
		Group("creator_id").
		Order("AVG(score) DESC").
		Limit(limit).
		Pluck("creator_id", &creatorIDs).Error
	if err != nil {
		return nil, err
	}
	return creatorIDs, nil
}
