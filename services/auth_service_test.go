package services

import (
	"context"
	"testing"

	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	return NewAuthService(setupTestDB(t), NewTokenIssuer(config.Default()))
}

func createStaff(t *testing.T, svc *AuthService, email, userType string) *models.User {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email: email, Name: "Staff Member", Password: "correct-horse", Type: userType,
	})
	require.NoError(t, err)
	return user
}

func TestCreateUser(t *testing.T) {
	svc := newAuthService(t)

	user := createStaff(t, svc, "  Admin@Shahzad.PK ", models.UserTypeAdmin)
	assert.Equal(t, "admin@shahzad.pk", user.Email)
	assert.True(t, user.Active)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email: "admin@shahzad.pk", Name: "Again", Password: "another-pass", Type: models.UserTypeEmployee,
	})
	assert.Equal(t, KindConflict, AsAppError(err).Kind)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{Email: "x@y.z", Name: "", Password: "short", Type: "owner"})
	ae := AsAppError(err)
	assert.Equal(t, KindValidation, ae.Kind)
	assert.Contains(t, ae.Fields, "name")
	assert.Contains(t, ae.Fields, "password")
	assert.Contains(t, ae.Fields, "type")
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	createStaff(t, svc, "employee@shahzad.pk", models.UserTypeEmployee)

	token, user, err := svc.Login(context.Background(), LoginInput{Email: "Employee@shahzad.pk", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, models.UserTypeEmployee, user.Type)

	_, _, err = svc.Login(context.Background(), LoginInput{Email: "employee@shahzad.pk", Password: "wrong-password"})
	assert.Equal(t, KindUnauthorized, AsAppError(err).Kind)

	_, _, err = svc.Login(context.Background(), LoginInput{Email: "nobody@shahzad.pk", Password: "correct-horse"})
	assert.Equal(t, KindUnauthorized, AsAppError(err).Kind)
}

func TestLogin_DeactivatedUser(t *testing.T) {
	svc := newAuthService(t)
	user := createStaff(t, svc, "gone@shahzad.pk", models.UserTypeEmployee)
	require.NoError(t, svc.DeactivateUser(context.Background(), user.ID))

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "gone@shahzad.pk", Password: "correct-horse"})
	assert.Equal(t, KindUnauthorized, AsAppError(err).Kind)
}

func TestListAndDeactivateUsers(t *testing.T) {
	svc := newAuthService(t)
	first := createStaff(t, svc, "one@shahzad.pk", models.UserTypeAdmin)
	createStaff(t, svc, "two@shahzad.pk", models.UserTypeEmployee)

	require.NoError(t, svc.DeactivateUser(context.Background(), first.ID))

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "two@shahzad.pk", users[0].Email)

	err = svc.DeactivateUser(context.Background(), first.ID)
	assert.Equal(t, KindNotFound, AsAppError(err).Kind)
}

func TestEnsureAdmin(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "owner@shahzad.pk", "bootstrap-pass", "Owner"))
	require.NoError(t, svc.EnsureAdmin(context.Background(), "owner@shahzad.pk", "bootstrap-pass", "Owner"))

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin())
}

func TestResolveSubject(t *testing.T) {
	svc := newAuthService(t)
	user := createStaff(t, svc, "staff@shahzad.pk", models.UserTypeEmployee)

	got, err := svc.ResolveSubject(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.ResolveSubject(context.Background(), "auth0|unknown")
	assert.Equal(t, KindUnauthorized, AsAppError(err).Kind)

	_, err = svc.LinkAuth0(context.Background(), "auth0|abc", "STAFF@shahzad.pk")
	require.NoError(t, err)

	got, err = svc.ResolveSubject(context.Background(), "auth0|abc")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestLinkAuth0(t *testing.T) {
	svc := newAuthService(t)
	createStaff(t, svc, "a@shahzad.pk", models.UserTypeEmployee)
	createStaff(t, svc, "b@shahzad.pk", models.UserTypeEmployee)

	linked, err := svc.LinkAuth0(context.Background(), "auth0|a", "a@shahzad.pk")
	require.NoError(t, err)
	require.NotNil(t, linked.Auth0ID)
	assert.Equal(t, "auth0|a", *linked.Auth0ID)

	_, err = svc.LinkAuth0(context.Background(), "auth0|a", "a@shahzad.pk")
	assert.NoError(t, err, "relinking the same identity is idempotent")

	_, err = svc.LinkAuth0(context.Background(), "auth0|other", "a@shahzad.pk")
	assert.Equal(t, KindConflict, AsAppError(err).Kind)

	_, err = svc.LinkAuth0(context.Background(), "auth0|a", "b@shahzad.pk")
	assert.Equal(t, KindConflict, AsAppError(err).Kind, "one identity cannot own two accounts")

	_, err = svc.LinkAuth0(context.Background(), "auth0|c", "customer@gmail.com")
	assert.Equal(t, KindForbidden, AsAppError(err).Kind)
}
