package repositoryImp

import (
	"fertiq/entities"
	"fertiq/pkg/predict/repository"

	"gorm.io/gorm"
)

type predictionRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PredictionRepository { return &predictionRepo{db} }

func (r *predictionRepo) Append(p *entities.FQData) error { return r.db.Create(p).Error }

func (r *predictionRepo) Recent(limit int) ([]entities.FQData, error) {
	var out []entities.FQData
	if err := r.db.Order("id_fq DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *predictionRepo) All() ([]entities.FQData, error) {
	var out []entities.FQData
	if err := r.db.Order("id_fq ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *predictionRepo) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&entities.FQData{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
