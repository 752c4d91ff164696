package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smilepoint/clinic-api/identity"
	"github.com/smilepoint/clinic-api/models"
)

type stubIdentity struct {
	session      *identity.Session
	signInErr    error
	signInCalled bool
}

func (s *stubIdentity) GetUser(ctx context.Context, accessToken string) (*identity.User, error) {
	return nil, errors.New("not supported")
}

func (s *stubIdentity) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	s.signInCalled = true
	if s.signInErr != nil {
		return nil, s.signInErr
	}
	return s.session, nil
}

func (s *stubIdentity) SignOut(ctx context.Context, accessToken string) error {
	return nil
}

func newAuthApp(t *testing.T, ctl *AuthController) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Post("/auth/login", ctl.Login)
	app.Post("/auth/register", ctl.Register)
	return app
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func credentialRows(t *testing.T, id int, email, password, role string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password", "role"}).
		AddRow(id, "Some Name", email, hashPassword(t, password), role)
}

func TestLoginWithCredentials(t *testing.T) {
	conn, mock := newTestDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("drake@clinic.com", 1).
		WillReturnRows(credentialRows(t, 7, "drake@clinic.com", "s3cret", models.RoleDentist))

	provider := &stubIdentity{}
	ctl := &AuthController{DB: conn, Identity: provider, Secret: "test-secret"}
	app := newAuthApp(t, ctl)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", fiber.Map{
		"email":    "drake@clinic.com",
		"password": "s3cret",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.False(t, provider.signInCalled, "credentials-table hit must not reach the identity provider")
	assert.NotEmpty(t, body["refreshToken"])

	token, err := jwt.Parse(body["token"].(string), func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "7", claims["id"])
	assert.Equal(t, "drake@clinic.com", claims["email"])
	assert.Equal(t, models.RoleDentist, claims["role"])
}

func TestLoginWrongPasswordDoesNotFallThrough(t *testing.T) {
	conn, mock := newTestDB(t)
	// The email also exists as a demo account; a credentials-table mismatch
	// must still fail outright.
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("sarah.smith@dental.com", 1).
		WillReturnRows(credentialRows(t, 8, "sarah.smith@dental.com", "actual-password", models.RoleDentist))

	provider := &stubIdentity{}
	ctl := &AuthController{DB: conn, Identity: provider, Secret: "test-secret"}
	app := newAuthApp(t, ctl)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", fiber.Map{
		"email":    "sarah.smith@dental.com",
		"password": "wrong",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", decodeBody(t, resp)["error"])
	assert.False(t, provider.signInCalled)
}

func TestLoginDemoFallback(t *testing.T) {
	conn, mock := newTestDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("hr@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	provider := &stubIdentity{signInErr: errors.New("identity provider returned 400: Invalid login credentials")}
	ctl := &AuthController{DB: conn, Identity: provider, Secret: "test-secret"}
	app := newAuthApp(t, ctl)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", fiber.Map{
		"email":    "hr@example.com",
		"password": "anything",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.True(t, provider.signInCalled)
	user := body["user"].(map[string]any)
	assert.Equal(t, "9b2d1f8a-6c3e-4d9a-8b5f-7e2c1a3d6b9e", user["id"])
	assert.Equal(t, models.RoleHR, user["role"])
}

func TestLoginAllPathsExhausted(t *testing.T) {
	conn, mock := newTestDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("nobody@nowhere.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	provider := &stubIdentity{signInErr: errors.New("identity provider returned 400: Invalid login credentials")}
	ctl := &AuthController{DB: conn, Identity: provider, Secret: "test-secret"}
	app := newAuthApp(t, ctl)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", fiber.Map{
		"email":    "nobody@nowhere.com",
		"password": "anything",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", decodeBody(t, resp)["error"])
}

func TestLoginGmailPatientAutoProvisions(t *testing.T) {
	conn, mock := newTestDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("pat@gmail.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("pat@gmail.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	provider := &stubIdentity{session: &identity.Session{
		AccessToken: "at",
		User: identity.User{
			ID:       "u-9",
			Email:    "pat@gmail.com",
			Metadata: map[string]any{"name": "Pat", "role": "patient"},
		},
	}}
	ctl := &AuthController{DB: conn, Identity: provider, Secret: "test-secret"}
	app := newAuthApp(t, ctl)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", fiber.Map{
		"email":    "pat@gmail.com",
		"password": "pw",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["show_registration_prompt"], "consumer-mail identities never see the prompt")
	assert.NoError(t, mock.ExpectationsWereMet(), "a patient record must be auto-provisioned")
}

func TestLoginUnregisteredPatientGetsPrompt(t *testing.T) {
	conn, mock := newTestDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("pat@corp.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients"`).
		WithArgs("pat@corp.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	provider := &stubIdentity{session: &identity.Session{
		AccessToken: "at",
		User: identity.User{
			ID:       "u-10",
			Email:    "pat@corp.com",
			Metadata: map[string]any{"name": "Pat"},
		},
	}}
	ctl := &AuthController{DB: conn, Identity: provider, Secret: "test-secret"}
	app := newAuthApp(t, ctl)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", fiber.Map{
		"email":    "pat@corp.com",
		"password": "pw",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["show_registration_prompt"])
}

func TestRegisterExistingEmail(t *testing.T) {
	conn, mock := newTestDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("pat@clinic.com", 1).
		WillReturnRows(credentialRows(t, 3, "pat@clinic.com", "pw", models.RolePatient))

	ctl := &AuthController{DB: conn, Identity: &stubIdentity{}, Secret: "test-secret"}
	app := newAuthApp(t, ctl)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/register", fiber.Map{
		"email":    "pat@clinic.com",
		"password": "pw",
		"name":     "Pat",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "exists", decodeBody(t, resp)["status"])
	assert.NoError(t, mock.ExpectationsWereMet(), "an existing email must cause no writes")
}

func TestRegisterDuplicatePatientName(t *testing.T) {
	conn, mock := newTestDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("new@clinic.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients"`).
		WithArgs("Pat").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ctl := &AuthController{DB: conn, Identity: &stubIdentity{}, Secret: "test-secret"}
	app := newAuthApp(t, ctl)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/register", fiber.Map{
		"email":    "new@clinic.com",
		"password": "pw",
		"name":     "Pat",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "already exists")
}

func TestRegisterCreatesUserAndPatient(t *testing.T) {
	conn, mock := newTestDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("new@clinic.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients"`).
		WithArgs("Pat").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery(`INSERT INTO "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectCommit()

	ctl := &AuthController{DB: conn, Identity: &stubIdentity{}, Secret: "test-secret"}
	app := newAuthApp(t, ctl)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/register", fiber.Map{
		"email":    "new@clinic.com",
		"password": "pw",
		"name":     "Pat",
		"phone":    "555-0101",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "created", body["status"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "12", user["id"])
	assert.Equal(t, models.RolePatient, user["role"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterMissingFields(t *testing.T) {
	conn, _ := newTestDB(t)
	ctl := &AuthController{DB: conn, Identity: &stubIdentity{}, Secret: "test-secret"}
	app := newAuthApp(t, ctl)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/register", fiber.Map{
		"email": "new@clinic.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
