package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"fertiq/entities"
	"fertiq/pkg/auth/repository"
)

type authRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AuthRepository { return &authRepo{db} }

func (r *authRepo) CreateUser(u *entities.Registration) error { return r.db.Create(u).Error }

func (r *authRepo) UserByEmail(email string) (*entities.Registration, error) {
	var u entities.Registration
	err := r.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepo) UserByID(id uint) (*entities.Registration, error) {
	var u entities.Registration
	err := r.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepo) CreateSession(s *entities.Session) error { return r.db.Create(s).Error }

func (r *authRepo) SessionByToken(token string) (*entities.Session, error) {
	var s entities.Session
	err := r.db.Where("token = ?", token).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *authRepo) DeleteSession(token string) error {
	return r.db.Delete(&entities.Session{}, "token = ?", token).Error
}
