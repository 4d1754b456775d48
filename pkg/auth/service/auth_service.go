package service

import (
	"github.com/rotisserie/eris"

	"fertiq/entities"
)

var (
	ErrFieldsRequired = eris.New("all fields are required")
	ErrEmailTaken     = eris.New("email already registered")
	ErrBadCredentials = eris.New("login failed")
	ErrNoSession      = eris.New("not logged in")
)

type AuthService interface {
	Register(name, email, password string) (*entities.Registration, error)
	Login(email, password string) (token string, err error)
	Logout(token string) error
	UserForToken(token string) (*entities.Registration, error)
}
