package repository

import "fertiq/entities"

type AuthRepository interface {
	CreateUser(*entities.Registration) error
	UserByEmail(email string) (*entities.Registration, error)
	UserByID(id uint) (*entities.Registration, error)
	CreateSession(*entities.Session) error
	SessionByToken(token string) (*entities.Session, error)
	DeleteSession(token string) error
}
