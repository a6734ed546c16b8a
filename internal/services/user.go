package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/zinal-app/apiserver/internal/store"
	"github.com/zinal-app/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (types.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserService encapsulates account use-cases: authentication and the admin
// user management operations.
type UserService struct {
	repo UserRepository
	now  func() time.Time
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

// Authenticate verifies the identifier (username or email) and password.
// Returns ErrInvalidCredentials on any mismatch and ErrAccessExpired when the
// password is correct but the account's access window is over.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (types.User, error) {
	user, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}

	if !user.AccessValid(s.now().UTC()) {
		return types.User{}, ErrAccessExpired
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

// CreateParams carries the fields accepted by user creation.
type CreateParams struct {
	Email           string
	Username        string
	Password        string
	IsAdmin         bool
	AccessExpiresAt *time.Time
}

// Create validates and stores a new user with a bcrypt-hashed password.
func (s *UserService) Create(ctx context.Context, params CreateParams) (types.User, error) {
	params.Email = strings.TrimSpace(params.Email)
	params.Username = strings.TrimSpace(params.Username)
	if params.Email == "" || params.Username == "" || params.Password == "" {
		return types.User{}, ErrMissingFields
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		Email:           params.Email,
		Username:        params.Username,
		PasswordHash:    string(hashed),
		IsAdmin:         params.IsAdmin,
		AccessExpiresAt: params.AccessExpiresAt,
	})
}

// UpdateParams carries a partial update: nil pointers leave the field
// untouched. ClearAccessExpiry removes the expiry regardless of
// AccessExpiresAt.
type UpdateParams struct {
	Email             *string
	Username          *string
	Password          *string
	IsAdmin           *bool
	AccessExpiresAt   *time.Time
	ClearAccessExpiry bool
}

// Update applies the present fields to an existing user.
func (s *UserService) Update(ctx context.Context, id int64, params UpdateParams) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}

	if params.Email != nil && *params.Email != "" {
		user.Email = *params.Email
	}
	if params.Username != nil && *params.Username != "" {
		user.Username = *params.Username
	}
	if params.IsAdmin != nil {
		user.IsAdmin = *params.IsAdmin
	}
	if params.ClearAccessExpiry {
		user.AccessExpiresAt = nil
	} else if params.AccessExpiresAt != nil {
		user.AccessExpiresAt = params.AccessExpiresAt
	}
	if params.Password != nil && *params.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return types.User{}, err
		}
		user.PasswordHash = string(hashed)
	}

	return s.repo.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
