package patient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smilepoint/clinic-api/utils"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	conn, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return conn, mock
}

func newPatientApp(t *testing.T, ctl *Controller, email string) *fiber.App {
	t.Helper()
	app := fiber.New()
	session := func(handler fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			c.Locals("email", email)
			return handler(c)
		}
	}
	app.Delete("/patient/appointments/:id", session(ctl.Cancel))
	app.Get("/patient/balance", session(ctl.Balance))
	return app
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body io.Reader
	if payload != nil {
		buf, _ := json.Marshal(payload)
		body = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func expectPatientLookup(t *testing.T, mock sqlmock.Sqlmock, email string, id uint) {
	t.Helper()
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs(email, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(id, "Pat", email))
}

func TestCancelDeletesOwnAppointment(t *testing.T) {
	conn, mock := newTestDB(t)
	expectPatientLookup(t, mock, "pat@gmail.com", 5)
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE "appointments"."id" = \$1`).
		WithArgs("9", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "status", "date"}).
			AddRow(9, 5, "pending", time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctl := &Controller{DB: conn, InFlight: utils.NewInFlightSet()}
	app := newPatientApp(t, ctl, "pat@gmail.com")

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/patient/appointments/9", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet(), "cancel removes the row outright")
}

func TestCancelSomeoneElsesAppointment(t *testing.T) {
	conn, mock := newTestDB(t)
	expectPatientLookup(t, mock, "pat@gmail.com", 5)
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE "appointments"."id" = \$1`).
		WithArgs("9", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "status"}).
			AddRow(9, 6, "pending"))

	ctl := &Controller{DB: conn, InFlight: utils.NewInFlightSet()}
	app := newPatientApp(t, ctl, "pat@gmail.com")

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/patient/appointments/9", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Appointment belongs to another patient", decodeBody(t, resp)["error"])
}

func TestCancelWithoutPatientRecord(t *testing.T) {
	conn, mock := newTestDB(t)
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("ghost@corp.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ctl := &Controller{DB: conn, InFlight: utils.NewInFlightSet()}
	app := newPatientApp(t, ctl, "ghost@corp.com")

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/patient/appointments/9", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCancelWhileAlreadyProcessing(t *testing.T) {
	conn, mock := newTestDB(t)
	expectPatientLookup(t, mock, "pat@gmail.com", 5)

	inFlight := utils.NewInFlightSet()
	require.True(t, inFlight.TryAcquire("appointment:9"))

	ctl := &Controller{DB: conn, InFlight: inFlight}
	app := newPatientApp(t, ctl, "pat@gmail.com")

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/patient/appointments/9", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestBalanceAggregation(t *testing.T) {
	conn, mock := newTestDB(t)
	expectPatientLookup(t, mock, "pat@gmail.com", 5)
	mock.ExpectQuery(`SELECT "amount","status" FROM "payments"`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "status"}).
			AddRow(100.0, "paid").
			AddRow(50.0, "partial").
			AddRow(30.0, "unpaid"))

	ctl := &Controller{DB: conn, InFlight: utils.NewInFlightSet()}
	app := newPatientApp(t, ctl, "pat@gmail.com")

	resp, err := app.Test(jsonRequest(http.MethodGet, "/patient/balance", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, 100.0, body["total_paid"])
	assert.Equal(t, 80.0, body["total_balance"])
	assert.Equal(t, 180.0, body["total"])
}
