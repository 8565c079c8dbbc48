// Package testutils provides the HTTP test harness shared by the webapi
// handler packages.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	infraeventbus "github.com/amirasaad/ledger/infra/eventbus"
	infrarepo "github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/testutils"
	"github.com/amirasaad/ledger/webapi"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every account created by the suite.
const DefaultPassword = "password123"

var phoneSeq atomic.Int64

// NextPhone returns a unique 10-digit phone number.
func NextPhone() string {
	return fmt.Sprintf("9%09d", phoneSeq.Add(1))
}

// TestAccount is an account created through the suite together with a token.
type TestAccount struct {
	ID    string
	Name  string
	Phone string
	Token string
}

// E2ETestSuite runs the full Fiber app against a private in-memory store.
type E2ETestSuite struct {
	suite.Suite
	DB  *gorm.DB
	App *app.App
	Cfg *config.App
	app *fiber.App
}

// TestConfig returns the configuration used by the suite.
func TestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour}, PasswordCost: bcrypt.MinCost},
		RateLimit: &config.RateLimit{MaxRequests: 100000, Window: time.Minute},
		Ledger:    &config.Ledger{OperationTimeout: 5 * time.Second},
		Cors:      &config.Cors{AllowOrigins: "http://localhost:3000"},
	}
}

// SetupTest gives every test a fresh database.
func (s *E2ETestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.DB = testutils.NewTestDB(s.T())
	if s.Cfg == nil {
		s.Cfg = TestConfig()
	}
	deps := &config.Deps{
		Uow:      infrarepo.NewUoW(s.DB),
		EventBus: infraeventbus.NewWithMemory(logger),
		Logger:   logger,
	}
	s.App = app.New(deps, s.Cfg)
	s.app = webapi.SetupApp(s.App)
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a success envelope and returns its data as a map.
func (s *E2ETestSuite) Decode(resp *http.Response) map[string]any {
	defer resp.Body.Close() //nolint:errcheck
	var out common.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	data, _ := out.Data.(map[string]any)
	return data
}

// DecodeProblem reads a problem details response.
func (s *E2ETestSuite) DecodeProblem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint:errcheck
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

// Register creates a user account over HTTP and returns it with its token.
func (s *E2ETestSuite) Register(name, accountType string) *TestAccount {
	phone := NextPhone()
	body := fmt.Sprintf(
		`{"name":%q,"phone":%q,"aadhaar":%q,"accountType":%q,"password":%q}`,
		name, phone, "1234"+phone[2:], accountType, DefaultPassword,
	)
	resp := s.MakeRequest(fiber.MethodPost, "/api/users/register", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	data := s.Decode(resp)
	user := data["user"].(map[string]any)
	return &TestAccount{ID: user["id"].(string), Name: name, Phone: phone, Token: data["token"].(string)}
}

// Login returns a token for phone, or fails the test.
func (s *E2ETestSuite) Login(path, phone string) string {
	body := fmt.Sprintf(`{"phone":%q,"password":%q}`, phone, DefaultPassword)
	resp := s.MakeRequest(fiber.MethodPost, path, body, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	return s.Decode(resp)["token"].(string)
}

// SeedStaff inserts an employee or admin directly and logs it in.
func (s *E2ETestSuite) SeedStaff(name, role string) *TestAccount {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	s.Require().NoError(err)
	phone := NextPhone()
	acct := testutils.SeedAccount(s.T(), s.DB, testutils.AccountSeed{
		Name:         name,
		Phone:        phone,
		Role:         role,
		Category:     "current",
		PasswordHash: string(hash),
	})
	path := "/api/users/login"
	if role == "admin" {
		path = "/api/admin/login"
	}
	return &TestAccount{ID: acct.ID.String(), Name: name, Phone: phone, Token: s.Login(path, phone)}
}
