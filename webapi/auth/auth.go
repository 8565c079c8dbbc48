package auth

import (
	"errors"

	"github.com/amirasaad/ledger/pkg/commands"
	"github.com/amirasaad/ledger/pkg/domain"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	usersvc "github.com/amirasaad/ledger/pkg/service/user"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, authSvc *authsvc.Service, userSvc *usersvc.Service) {
	users := app.Group("/api/users")
	users.Post("/register", Register(authSvc, userSvc))
	users.Post("/login", Login(authSvc))
	app.Post("/api/admin/login", AdminLogin(authSvc))
}

// Register creates a user account and logs it in.
// @Summary Register a user
// @Description Create a role=user account and return a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration data"
// @Success 201 {object} common.Response{data=UserTokenResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /api/users/register [post]
func Register(authSvc *authsvc.Service, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err // error response already written
		}
		acct, err := userSvc.Register(c.UserContext(), commands.Register{
			Name:     input.Name,
			Phone:    input.Phone,
			Aadhaar:  input.Aadhaar,
			Category: input.AccountType,
			Password: input.Password,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Registration failed", err)
		}
		token, err := authSvc.GenerateToken(c.UserContext(), acct)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered successfully", UserTokenResponse{
			Token: token,
			User:  common.ToAccountResponse(acct),
		})
	}
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate with phone and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response{data=UserTokenResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /api/users/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // Error already written by BindAndValidate
		}
		acct, err := authSvc.Login(c.UserContext(), input.Phone, input.Password)
		if err != nil {
			return loginFailed(c, err)
		}
		token, err := authSvc.GenerateToken(c.UserContext(), acct)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Login successful", UserTokenResponse{
			Token: token,
			User:  common.ToAccountResponse(acct),
		})
	}
}

// AdminLogin authenticates an admin account.
// @Summary Admin login
// @Description Authenticate an admin with phone and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response{data=AdminTokenResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/admin/login [post]
func AdminLogin(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		acct, err := authSvc.AdminLogin(c.UserContext(), input.Phone, input.Password)
		if err != nil {
			return loginFailed(c, err)
		}
		token, err := authSvc.GenerateToken(c.UserContext(), acct)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Admin login successful", AdminTokenResponse{
			Token: token,
			Admin: common.ToAccountResponse(acct),
		})
	}
}

func loginFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		return common.ProblemDetailsJSON(c, "Invalid phone or password", nil, "Phone or password is incorrect", fiber.StatusUnauthorized)
	}
	return common.ProblemDetailsJSON(c, "Login failed", err)
}
