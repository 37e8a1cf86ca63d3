package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cookbook/internal/model"
	"cookbook/internal/repository"
	repoMocks "cookbook/internal/repository/mocks"
	"cookbook/internal/validation"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestUserService(repo repository.UserRepository) *userService {
	return &userService{repo: repo, now: func() time.Time { return fixedNow }}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		input      string
		setupMocks func(m *repoMocks.MockUserRepository)
		wantErr    bool
		wantValErr bool
	}{
		{
			name:  "happy path",
			input: "Alice",
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					_, err := uuid.Parse(u.ID)
					return err == nil && u.Name == "Alice" && u.CreatedAt.Equal(fixedNow) && u.UpdatedAt.Equal(fixedNow)
				})).Return(&model.User{ID: "gen-id", Name: "Alice"}, nil)
			},
		},
		{
			name:       "empty name",
			input:      "",
			setupMocks: func(m *repoMocks.MockUserRepository) {},
			wantErr:    true,
			wantValErr: true,
		},
		{
			name:  "repository error",
			input: "Alice",
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockUserRepository)
			tt.setupMocks(mRepo)
			svc := newTestUserService(mRepo)

			u, err := svc.Create(ctx, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, u)
				if tt.wantValErr {
					var verr *validation.Error
					assert.ErrorAs(t, err, &verr)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Alice", u.Name)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_List(t *testing.T) {
	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("List", mock.Anything).Return([]model.User{{ID: "a"}, {ID: "b"}}, nil)

	users, err := NewUserService(mRepo).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByID", ctx, id).Return(&model.User{ID: id}, nil)

		u, err := newTestUserService(mRepo).Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByID", ctx, id).Return(nil, repository.ErrNotFound)

		_, err := newTestUserService(mRepo).Get(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("bad ids", func(t *testing.T) {
		svc := newTestUserService(new(repoMocks.MockUserRepository))
		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
		_, err = svc.Get(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("renames", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("Update", ctx, &model.User{ID: id, Name: "Bob", UpdatedAt: fixedNow}).
			Return(&model.User{ID: id, Name: "Bob"}, nil)

		u, err := newTestUserService(mRepo).Update(ctx, id, "Bob")
		require.NoError(t, err)
		assert.Equal(t, "Bob", u.Name)
		mRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("Update", ctx, mock.Anything).Return(nil, repository.ErrNotFound)

		_, err := newTestUserService(mRepo).Update(ctx, id, "Bob")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := newTestUserService(new(repoMocks.MockUserRepository)).Update(ctx, id, "")
		var verr *validation.Error
		assert.ErrorAs(t, err, &verr)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("Delete", ctx, id).Return(nil).Once()
	mRepo.On("Delete", ctx, id).Return(repository.ErrNotFound).Once()
	svc := newTestUserService(mRepo)

	assert.NoError(t, svc.Delete(ctx, id))
	assert.ErrorIs(t, svc.Delete(ctx, id), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "x"), ErrInvalidID)
	mRepo.AssertExpectations(t)
}
