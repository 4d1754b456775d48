package serviceImp

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"golang.org/x/crypto/bcrypt"

	"fertiq/entities"
	"fertiq/pkg/auth/repository"
	"fertiq/pkg/auth/service"
)

type authSvc struct {
	r   repository.AuthRepository
	ttl time.Duration
}

func New(r repository.AuthRepository, ttl time.Duration) service.AuthService {
	return &authSvc{r: r, ttl: ttl}
}

func (s *authSvc) Register(name, email, password string) (*entities.Registration, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, service.ErrFieldsRequired
	}

	existing, err := s.r.UserByEmail(email)
	if err != nil {
		return nil, eris.Wrap(err, "lookup email")
	}
	if existing != nil {
		return nil, service.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, eris.Wrap(err, "hash password")
	}
	u := &entities.Registration{Name: name, Email: email, Password: string(hash)}
	if err := s.r.CreateUser(u); err != nil {
		return nil, eris.Wrap(err, "create user")
	}
	return u, nil
}

func (s *authSvc) Login(email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", service.ErrBadCredentials
	}

	u, err := s.r.UserByEmail(email)
	if err != nil {
		return "", eris.Wrap(err, "lookup email")
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", service.ErrBadCredentials
	}

	sess := &entities.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.r.CreateSession(sess); err != nil {
		return "", eris.Wrap(err, "create session")
	}
	return sess.Token, nil
}

func (s *authSvc) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.r.DeleteSession(token)
}

func (s *authSvc) UserForToken(token string) (*entities.Registration, error) {
	if token == "" {
		return nil, service.ErrNoSession
	}
	sess, err := s.r.SessionByToken(token)
	if err != nil {
		return nil, eris.Wrap(err, "lookup session")
	}
	if sess == nil || time.Now().After(sess.ExpiresAt) {
		return nil, service.ErrNoSession
	}
	u, err := s.r.UserByID(sess.UserID)
	if err != nil {
		return nil, eris.Wrap(err, "lookup user")
	}
	if u == nil {
		return nil, service.ErrNoSession
	}
	return u, nil
}
