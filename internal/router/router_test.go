package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"minibank/internal/auth"
	"minibank/internal/db"
	"minibank/internal/handler"
	"minibank/internal/logging"
	"minibank/internal/model"
	"minibank/internal/repository"
	"minibank/internal/service"
)

type testApp struct {
	e      *echo.Echo
	gormDB *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gormDB, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := logging.Nop()
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	authService, err := service.NewAuthService(repository.NewUserRepository(gormDB), auth.NewBcryptHasher(), jwtService, "admin-key")
	require.NoError(t, err)
	accountService := service.NewAccountService(repository.NewAccountRepository(gormDB), nil)

	e := echo.New()
	require.NoError(t, Register(e, log, jwtService,
		handler.NewAuthHandler(authService, log),
		handler.NewTransactionHandler(accountService, log),
	))
	return &testApp{e: e, gormDB: gormDB}
}

func (a *testApp) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := a.do(http.MethodPost, "/login", `{"email":"`+email+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp handler.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestScenario_RegisterLoginTransactions(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/register", `{"email":"a@x.com","password":"pw1","isBanker":false}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "User registered successfully", message(t, rec))

	token := app.login(t, "a@x.com", "pw1")
	bearer := map[string]string{echo.HeaderAuthorization: "Bearer " + token}

	rec = app.do(http.MethodGet, "/transactions", "", bearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "account not found", message(t, rec))

	var user model.User
	require.NoError(t, app.gormDB.Where("email = ?", "a@x.com").First(&user).Error)
	require.NoError(t, repository.NewAccountRepository(app.gormDB).Create(context.Background(), &model.Account{
		UserID:          user.ID,
		Amount:          decimal.NewFromInt(50),
		TransactionType: model.TransactionTypeOpening,
	}))

	rec = app.do(http.MethodGet, "/transactions", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Balance: 50")

	rec = app.do(http.MethodPost, "/deposit", `{"amount":"25"}`, bearer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, "/withdraw", `{"amount":"500"}`, bearer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/transactions", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Balance: 75")
}

func TestScenario_CentAmounts(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/register", `{"email":"a@x.com","password":"pw1"}`, nil).Code)
	bearer := map[string]string{echo.HeaderAuthorization: "Bearer " + app.login(t, "a@x.com", "pw1")}

	var user model.User
	require.NoError(t, app.gormDB.Where("email = ?", "a@x.com").First(&user).Error)
	require.NoError(t, repository.NewAccountRepository(app.gormDB).Create(context.Background(), &model.Account{
		UserID:          user.ID,
		Amount:          decimal.Zero,
		TransactionType: model.TransactionTypeOpening,
	}))

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/deposit", `{"amount":"0.1"}`, bearer).Code)
	rec := app.do(http.MethodPost, "/deposit", `{"amount":0.2}`, bearer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp handler.BalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0.3", resp.Balance)

	for _, body := range []string{
		`{"amount":"0.001"}`,
		`{"amount":"1e400"}`,
		`{"amount":1` + strings.Repeat("0", 400) + `}`,
	} {
		rec = app.do(http.MethodPost, "/deposit", body, bearer)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "invalid amount", message(t, rec))
	}

	rec = app.do(http.MethodPost, "/withdraw", `{"amount":"0.3"}`, bearer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0", resp.Balance)

	rec = app.do(http.MethodGet, "/transactions", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Balance: 0")
}

func TestScenario_DuplicateRegistration(t *testing.T) {
	app := newTestApp(t)
	body := `{"email":"a@x.com","password":"pw1"}`

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/register", body, nil).Code)
	rec := app.do(http.MethodPost, "/register", `{"email":"a@x.com","password":"other"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	require.NoError(t, app.gormDB.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// the original password still works
	app.login(t, "a@x.com", "pw1")
}

func TestScenario_LoginFailuresLookAlike(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/register", `{"email":"a@x.com","password":"pw1"}`, nil).Code)

	unknown := app.do(http.MethodPost, "/login", `{"email":"ghost@x.com","password":"pw1"}`, nil)
	wrong := app.do(http.MethodPost, "/login", `{"email":"a@x.com","password":"pw2"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestScenario_BankerRegistration(t *testing.T) {
	app := newTestApp(t)
	body := `{"email":"b@x.com","password":"pw1","isBanker":true}`

	rec := app.do(http.MethodPost, "/register", body, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	require.NoError(t, app.gormDB.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	rec = app.do(http.MethodPost, "/register", body, map[string]string{handler.HeaderAdminKey: "admin-key"})
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, app.gormDB.Where("email = ?", "b@x.com").First(&user).Error)
	assert.True(t, user.IsBanker)
}

func TestAuthGate(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token missing", message(t, rec))

	rec = app.do(http.MethodGet, "/transactions", "", map[string]string{echo.HeaderAuthorization: "Bearer garbage"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid access token", message(t, rec))
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
