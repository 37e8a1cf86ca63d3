package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cookbook/internal/model"
	"cookbook/internal/repository"
	"cookbook/internal/validation"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrInvalidID  = errors.New("invalid id format")
	ErrNotFound   = errors.New("user not found")
)

// UserInput is the accepted shape for creating or renaming a user.
type UserInput struct {
	Name string `json:"name" validate:"required"`
}

// UserService defines the use cases behind the users endpoints.
type UserService interface {
	// Create validates name and stores a new user with a fresh UUID.
	Create(ctx context.Context, name string) (*model.User, error)

	// List returns every user.
	List(ctx context.Context) ([]model.User, error)

	// Get returns a single user by its ID.
	Get(ctx context.Context, id string) (*model.User, error)

	// Update renames a user.
	Update(ctx context.Context, id, name string) (*model.User, error)

	// Delete removes a user by ID.
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserService constructs a new UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *userService) Create(ctx context.Context, name string) (*model.User, error) {
	if err := validation.Validate(UserInput{Name: name}); err != nil {
		return nil, err
	}
	now := s.now()
	u := &model.User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return stored, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id, name string) (*model.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Validate(UserInput{Name: name}); err != nil {
		return nil, err
	}
	u, err := s.repo.Update(ctx, &model.User{ID: id, Name: name, UpdatedAt: s.now()})
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id))
}

func checkID(id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
