package repository

import (
	"dramastream/internal/models"

	"gorm.io/gorm"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) ListAll() ([]models.Genre, error) {
	var out []models.Genre
	err := r.db.Order("name").Find(&out).Error
	return out, err
}
