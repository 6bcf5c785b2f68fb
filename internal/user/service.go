package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Anhamd/fitbazzar/internal/apperr"
)

const (
	msgCredentialsRequired = "Email and password are required"
	msgEmailExists         = "Email already exists"
	msgInvalidCredentials  = "Invalid email or password"
	msgPasswordTooLong     = "Password must be at most 72 bytes"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

// dummyHash is compared against when the email is unknown so that a failed
// lookup costs as much as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("fitbazaar-dummy-password"), bcrypt.DefaultCost)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, apperr.Validation(msgCredentialsRequired)
	}
	if len(password) > maxPasswordBytes {
		return User{}, apperr.Validation(msgPasswordTooLong)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, apperr.Storage(err)
	}

	created, err := s.repo.Create(ctx, User{
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, ErrEmailExists) {
		return User{}, apperr.Wrap(apperr.ErrConflict, msgEmailExists, err)
	}
	if err != nil {
		return User{}, apperr.Storage(err)
	}
	return created, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, apperr.Validation(msgCredentialsRequired)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return User{}, apperr.Auth(msgInvalidCredentials)
	}
	if err != nil {
		return User{}, apperr.Storage(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, apperr.Auth(msgInvalidCredentials)
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, apperr.Storage(err)
	}
	return user, err
}
