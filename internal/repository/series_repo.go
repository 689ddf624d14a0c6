package repository

import (
	"encoding/json"

	"dramastream/internal/models"

	"gorm.io/gorm"
)

type SeriesRepository struct {
	db *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

func (r *SeriesRepository) ListAll() ([]models.Series, error) {
	var out []models.Series
	err := r.db.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *SeriesRepository) GetByID(id uint) (*models.Series, error) {
	var s models.Series
	err := r.db.First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SeriesRepository) ListTrending() ([]models.Series, error) {
	var out []models.Series
	err := r.db.Where("is_trending = ?", true).Order("view_count DESC").Find(&out).Error
	return out, err
}

func (r *SeriesRepository) ListNew() ([]models.Series, error) {
	var out []models.Series
	err := r.db.Where("is_new = ?", true).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *SeriesRepository) ListFeatured() ([]models.Series, error) {
	var out []models.Series
	err := r.db.Where("is_featured = ?", true).Order("view_count DESC").Limit(5).Find(&out).Error
	return out, err
}

// ListByGenre filters in Go: genres is a JSON array column and SQLite has no
// portable JSON containment operator shared with MySQL.
func (r *SeriesRepository) ListByGenre(genre string) ([]models.Series, error) {
	var all []models.Series
	if err := r.db.Order("view_count DESC").Find(&all).Error; err != nil {
		return nil, err
	}
	out := make([]models.Series, 0, len(all))
	for _, s := range all {
		var names []string
		if err := json.Unmarshal([]byte(s.Genres), &names); err != nil {
			continue
		}
		for _, n := range names {
			if n == genre {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (r *SeriesRepository) Search(query string) ([]models.Series, error) {
	var out []models.Series
	like := "%" + query + "%"
	err := r.db.Where("title LIKE ? OR description LIKE ?", like, like).
		Order("view_count DESC").Find(&out).Error
	return out, err
}

func (r *SeriesRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Series{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
