package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

func validUser() *User {
	return &User{
		ID:       kernel.GenerateUserID(),
		Username: kernel.NewUsername("jdoe"),
		Email:    kernel.NewEmail("jdoe@example.com"),
		Role:     RoleApplicant,
	}
}

func TestSetAndCheckPassword(t *testing.T) {
	u := validUser()

	require.NoError(t, u.SetPassword("correct horse battery"))
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotContains(t, u.PasswordHash, "correct horse")

	assert.True(t, u.CheckPassword("correct horse battery"))
	assert.False(t, u.CheckPassword("wrong password"))
}

func TestSetPasswordRejectsShort(t *testing.T) {
	u := validUser()
	assert.Error(t, u.SetPassword("short"))
	assert.Empty(t, u.PasswordHash)
}

func TestUserValidate(t *testing.T) {
	require.NoError(t, validUser().Validate())

	noUsername := validUser()
	noUsername.Username = ""
	assert.Error(t, noUsername.Validate())

	badEmail := validUser()
	badEmail.Email = kernel.Email("not-an-email")
	assert.Error(t, badEmail.Validate())

	badRole := validUser()
	badRole.Role = "admin"
	assert.Error(t, badRole.Validate())
}

func TestFullName(t *testing.T) {
	u := validUser()
	assert.Equal(t, "jdoe", u.FullName())

	u.FirstName = "Jane"
	assert.Equal(t, "Jane", u.FullName())

	u.LastName = "Doe"
	assert.Equal(t, "Jane Doe", u.FullName())
}
