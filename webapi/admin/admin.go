// Package admin exposes employee administration.
package admin

import (
	"github.com/amirasaad/ledger/pkg/commands"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/middleware"
	"github.com/amirasaad/ledger/pkg/policy"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	usersvc "github.com/amirasaad/ledger/pkg/service/user"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateEmployeeInput represents the request body for employee creation.
type CreateEmployeeInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
	Aadhaar  string `json:"aadhaar" validate:"required,len=12,numeric"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// EmployeeResponse wraps one employee account.
type EmployeeResponse struct {
	Employee common.AccountResponse `json:"employee"`
}

// EmployeesResponse lists employee accounts.
type EmployeesResponse struct {
	Employees []common.AccountResponse `json:"employees"`
}

func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/api/admin/create-employee", protected, middleware.Authorize(authSvc, policy.OpCreateEmployee), CreateEmployee(userSvc))
	app.Get("/api/admin/employees", protected, middleware.Authorize(authSvc, policy.OpListEmployees), ListEmployees(userSvc))
	app.Delete("/api/admin/employee/:id", protected, middleware.Authorize(authSvc, policy.OpRemoveEmployee), RemoveEmployee(userSvc))
}

// CreateEmployee creates an employee account.
// @Summary Create employee
// @Description Create a role=employee account (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateEmployeeInput true "Employee data"
// @Success 201 {object} common.Response{data=EmployeeResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/admin/create-employee [post]
// @Security Bearer
func CreateEmployee(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateEmployeeInput](c)
		if input == nil {
			return err
		}
		emp, err := userSvc.CreateEmployee(c.UserContext(), commands.CreateEmployee{
			Name:     input.Name,
			Phone:    input.Phone,
			Aadhaar:  input.Aadhaar,
			Password: input.Password,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create employee", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Employee created successfully", EmployeeResponse{
			Employee: common.ToAccountResponse(emp),
		})
	}
}

// ListEmployees lists employee accounts that have not been removed.
// @Summary List employees
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response{data=EmployeesResponse}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /api/admin/employees [get]
// @Security Bearer
func ListEmployees(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := userSvc.ListEmployees(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list employees", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Employees fetched successfully", EmployeesResponse{
			Employees: common.ToAccountResponses(list),
		})
	}
}

// RemoveEmployee removes an employee account.
// @Summary Remove employee
// @Description Soft-delete a role=employee account (admin only)
// @Tags admin
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/admin/employee/{id} [delete]
// @Security Bearer
func RemoveEmployee(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", policy.ErrUnauthenticated)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid employee ID", err, "Employee ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := userSvc.RemoveEmployee(c.UserContext(), id, p.AccountID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't remove employee", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Employee deleted successfully", nil)
	}
}
