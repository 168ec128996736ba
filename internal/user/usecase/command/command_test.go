package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studimarket/storefront/internal/user/domain"
	"github.com/studimarket/storefront/internal/user/repository"
)

func TestRegisterUserSplitsName(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(RegisterUserCommand{
		Email:    "Ana@Example.com",
		Password: "secret1",
		FullName: "Ana María Torres",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "Ana", user.FirstName)
	assert.Equal(t, "María Torres", user.LastName)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.Password)
}

func TestRegisterUserValidation(t *testing.T) {
	handler := NewRegisterUserHandler(repository.NewInMemoryUserRepository())

	cases := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"missing email", RegisterUserCommand{Password: "secret1", FullName: "Ana"}},
		{"bad email", RegisterUserCommand{Email: "nope", Password: "secret1", FullName: "Ana"}},
		{"short password", RegisterUserCommand{Email: "a@b.co", Password: "12345", FullName: "Ana"}},
		{"missing name", RegisterUserCommand{Email: "a@b.co", Password: "secret1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(tc.cmd)
			assert.Error(t, err)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler := NewRegisterUserHandler(repository.NewInMemoryUserRepository())

	cmd := RegisterUserCommand{Email: "ana@example.com", Password: "secret1", FullName: "Ana Torres"}
	_, err := handler.Handle(cmd)
	require.NoError(t, err)

	_, err = handler.Handle(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLoginRoundTrip(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	_, err := register.Handle(RegisterUserCommand{
		Email:    "ana@example.com",
		Password: "secret1",
		FullName: "Ana Torres",
	})
	require.NoError(t, err)

	resp, err := login.Handle(LoginUserCommand{Email: "ANA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@example.com", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	_, err := register.Handle(RegisterUserCommand{
		Email:    "ana@example.com",
		Password: "secret1",
		FullName: "Ana Torres",
	})
	require.NoError(t, err)

	_, err = login.Handle(LoginUserCommand{Email: "ana@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	_, err = login.Handle(LoginUserCommand{Email: "nobody@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}
