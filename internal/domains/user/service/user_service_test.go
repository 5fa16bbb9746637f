package service

import (
	"context"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	user "booking-backend/internal/domains/user"
)

type fakeRepo struct {
	created []*user.User
	err     error
}

func (f *fakeRepo) Create(_ context.Context, u *user.User) error {
	if f.err != nil {
		return f.err
	}
	u.ID = int64(len(f.created) + 1)
	f.created = append(f.created, u)
	return nil
}

func (f *fakeRepo) List(context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(f.created))
	for _, u := range f.created {
		out = append(out, *u)
	}
	return out, f.err
}

func newTestService(repo user.Repository) *userService {
	return &userService{repo: repo, bcryptCost: bcrypt.MinCost}
}

func TestCreate_HashesPassword(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	u, err := svc.Create(context.Background(), user.CreateUserRequest{
		Name:     " Alice ",
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")))
}

func TestCreate_Validation(t *testing.T) {
	repo := &fakeRepo{}
	_, err := newTestService(repo).Create(context.Background(), user.CreateUserRequest{
		Email:    "not-an-email",
		Password: "short",
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "name")
	assert.Contains(t, verrs, "email")
	assert.Contains(t, verrs, "password")
	assert.Empty(t, repo.created)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := &fakeRepo{err: user.ErrEmailAlreadyExists}
	_, err := newTestService(repo).Create(context.Background(), user.CreateUserRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "password123",
	})

	assert.True(t, errors.Is(err, user.ErrEmailAlreadyExists))
}
