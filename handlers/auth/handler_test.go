package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Zozodoank/idcashier-sub002/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	// Initialiser l'environnement de test
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func userRow(email, passwordHash string, enable bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password", "company_name", "phone_number", "role", "enable", "created_at", "updated_at"}).
		AddRow("user-uuid", email, passwordHash, "Toko Maju", "0812000111", "OWNER", enable, time.Now(), time.Now())
}

func postLogin(body map[string]string) *httptest.ResponseRecorder {
	r := testutils.SetupTestRouter()
	r.POST("/login", Login)

	jsonData, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestLogin_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs("owner@toko.example", 1).
		WillReturnRows(userRow("owner@toko.example", string(hash), true))

	resp := postLogin(map[string]string{
		"email":    "owner@toko.example",
		"password": "Password123",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var response map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NotEmpty(t, response["token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs("owner@toko.example", 1).
		WillReturnRows(userRow("owner@toko.example", string(hash), true))

	resp := postLogin(map[string]string{
		"email":    "owner@toko.example",
		"password": "WrongPassword1",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs("ghost@toko.example", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	resp := postLogin(map[string]string{
		"email":    "ghost@toko.example",
		"password": "Password123",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_DisabledAccount(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs("owner@toko.example", 1).
		WillReturnRows(userRow("owner@toko.example", string(hash), false))

	resp := postLogin(map[string]string{
		"email":    "owner@toko.example",
		"password": "Password123",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_InvalidEmailFormat(t *testing.T) {
	_, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	resp := postLogin(map[string]string{
		"email":    "not-an-email",
		"password": "Password123",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLogin_EmptyPassword(t *testing.T) {
	_, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	resp := postLogin(map[string]string{
		"email": "owner@toko.example",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
