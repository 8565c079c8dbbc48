package admin_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/ledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AdminTestSuite struct {
	testutils.E2ETestSuite
	admin *testutils.TestAccount
}

func (s *AdminTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.admin = s.SeedStaff("Root", "admin")
}

func (s *AdminTestSuite) createEmployee(name string) (map[string]any, string) {
	phone := testutils.NextPhone()
	body := fmt.Sprintf(`{"name":%q,"phone":%q,"aadhaar":%q,"password":%q}`, name, phone, "5678"+phone[2:], testutils.DefaultPassword)
	resp := s.MakeRequest(fiber.MethodPost, "/api/admin/create-employee", body, s.admin.Token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	return s.Decode(resp)["employee"].(map[string]any), phone
}

func (s *AdminTestSuite) TestCreateEmployee() {
	emp, phone := s.createEmployee("Eve")
	s.Equal("employee", emp["role"])
	s.Equal("current", emp["accountType"])

	token := s.Login("/api/users/login", phone)
	resp := s.MakeRequest(fiber.MethodGet, "/api/employee/users", "", token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *AdminTestSuite) TestCreateEmployee_Duplicate() {
	_, phone := s.createEmployee("Eve")
	body := fmt.Sprintf(`{"name":"Eve2","phone":%q,"aadhaar":"111122223333","password":"password123"}`, phone)
	resp := s.MakeRequest(fiber.MethodPost, "/api/admin/create-employee", body, s.admin.Token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusConflict, resp.StatusCode)
}

func (s *AdminTestSuite) TestCreateEmployee_Forbidden() {
	emp := s.SeedStaff("Eve", "employee")
	body := `{"name":"X","phone":"9111111111","aadhaar":"111111111111","password":"password123"}`
	resp := s.MakeRequest(fiber.MethodPost, "/api/admin/create-employee", body, emp.Token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusForbidden, resp.StatusCode)
}

func (s *AdminTestSuite) TestListAndRemoveEmployees() {
	emp, phone := s.createEmployee("Eve")
	s.createEmployee("Mallory")

	resp := s.MakeRequest(fiber.MethodGet, "/api/admin/employees", "", s.admin.Token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(s.Decode(resp)["employees"].([]any), 2)

	resp = s.MakeRequest(fiber.MethodDelete, "/api/admin/employee/"+emp["id"].(string), "", s.admin.Token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = s.MakeRequest(fiber.MethodGet, "/api/admin/employees", "", s.admin.Token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(s.Decode(resp)["employees"].([]any), 1)

	resp = s.MakeRequest(fiber.MethodPost, "/api/users/login", fmt.Sprintf(`{"phone":%q,"password":%q}`, phone, testutils.DefaultPassword), "")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = s.MakeRequest(fiber.MethodDelete, "/api/admin/employee/"+emp["id"].(string), "", s.admin.Token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *AdminTestSuite) TestRemovedEmployeeTokenRejected() {
	emp, phone := s.createEmployee("Eve")
	token := s.Login("/api/users/login", phone)

	resp := s.MakeRequest(fiber.MethodGet, "/api/employee/users", "", token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = s.MakeRequest(fiber.MethodDelete, "/api/admin/employee/"+emp["id"].(string), "", s.admin.Token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = s.MakeRequest(fiber.MethodGet, "/api/employee/users", "", token)
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = s.MakeRequest(fiber.MethodGet, "/api/employee/user/"+emp["id"].(string), "", token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AdminTestSuite) TestRemoveEmployee_NotAnEmployee() {
	user := s.Register("Asha", "savings")
	resp := s.MakeRequest(fiber.MethodDelete, "/api/admin/employee/"+user.ID, "", s.admin.Token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = s.MakeRequest(fiber.MethodDelete, "/api/admin/employee/"+uuid.NewString(), "", s.admin.Token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = s.MakeRequest(fiber.MethodDelete, "/api/admin/employee/xyz", "", s.admin.Token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminTestSuite(t *testing.T) {
	suite.Run(t, new(AdminTestSuite))
}
