package repository

import "fertiq/entities"

// PredictionRepository is the append-only history of served predictions.
type PredictionRepository interface {
	Append(*entities.FQData) error
	Recent(limit int) ([]entities.FQData, error)
	All() ([]entities.FQData, error)
	Count() (int64, error)
}
