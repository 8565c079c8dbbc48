// Package employee exposes the staff views over user accounts.
package employee

import (
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/middleware"
	"github.com/amirasaad/ledger/pkg/policy"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	usersvc "github.com/amirasaad/ledger/pkg/service/user"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// UsersResponse lists user accounts.
type UsersResponse struct {
	Users []common.AccountResponse `json:"users"`
}

// UserResponse wraps one account.
type UserResponse struct {
	User common.AccountResponse `json:"user"`
}

func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/api/employee/users", protected, middleware.Authorize(authSvc, policy.OpListUsers), ListUsers(userSvc))
	app.Get("/api/employee/user/:id", protected, middleware.Authorize(authSvc, policy.OpGetUser), GetUser(userSvc))
}

// ListUsers returns every role=user account.
// @Summary List users
// @Description List all user accounts (staff only)
// @Tags employee
// @Produce json
// @Success 200 {object} common.Response{data=UsersResponse}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /api/employee/users [get]
// @Security Bearer
func ListUsers(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := userSvc.ListUsers(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "All users fetched successfully", UsersResponse{
			Users: common.ToAccountResponses(users),
		})
	}
}

// GetUser returns a Fiber handler for retrieving an account by ID.
// @Summary Get user by ID
// @Description Retrieve an account by its ID (staff only)
// @Tags employee
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response{data=UserResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/employee/user/{id} [get]
// @Security Bearer
func GetUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			log.Errorf("Invalid user ID: %v", err)
			return common.ProblemDetailsJSON(c, "Invalid user ID", err, "User ID must be a valid UUID", fiber.StatusBadRequest)
		}
		acct, err := userSvc.GetUser(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User details fetched successfully", UserResponse{
			User: common.ToAccountResponse(acct),
		})
	}
}
