// Package ledger exposes the money-movement endpoints of the account holder.
package ledger

import (
	"github.com/amirasaad/ledger/pkg/commands"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/middleware"
	"github.com/amirasaad/ledger/pkg/policy"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	ledgersvc "github.com/amirasaad/ledger/pkg/service/ledger"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/api/users/deposit", protected, middleware.Authorize(authSvc, policy.OpDeposit), Deposit(ledgerSvc))
	app.Post("/api/users/withdraw", protected, middleware.Authorize(authSvc, policy.OpWithdraw), Withdraw(ledgerSvc))
	app.Post("/api/users/transfer", protected, middleware.Authorize(authSvc, policy.OpTransfer), Transfer(ledgerSvc))
	app.Get("/api/users/history", protected, middleware.Authorize(authSvc, policy.OpHistory), History(ledgerSvc))
}

// Deposit credits the caller's account.
// @Summary Deposit funds
// @Description Deposit a positive amount (at most two decimals) into the caller's account
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Deposit amount"
// @Success 200 {object} common.Response{data=BalanceResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/users/deposit [post]
// @Security Bearer
func Deposit(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", policy.ErrUnauthenticated)
		}
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		balance, err := ledgerSvc.Deposit(c.UserContext(), commands.Deposit{
			AccountID: p.AccountID,
			Amount:    input.Amount,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Deposit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", BalanceResponse{Balance: balance})
	}
}

// Withdraw debits the caller's account.
// @Summary Withdraw funds
// @Description Withdraw a positive amount from the caller's account
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Withdrawal amount"
// @Success 200 {object} common.Response{data=BalanceResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/users/withdraw [post]
// @Security Bearer
func Withdraw(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", policy.ErrUnauthenticated)
		}
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		balance, err := ledgerSvc.Withdraw(c.UserContext(), commands.Withdraw{
			AccountID: p.AccountID,
			Amount:    input.Amount,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Withdrawal failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", BalanceResponse{Balance: balance})
	}
}

// Transfer moves funds to the account holding recipientPhone.
// @Summary Transfer funds
// @Description Transfer a positive amount to another account by phone
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer request"
// @Success 200 {object} common.Response{data=TransferResponse}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/users/transfer [post]
// @Security Bearer
func Transfer(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", policy.ErrUnauthenticated)
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		res, err := ledgerSvc.Transfer(c.UserContext(), commands.Transfer{
			SenderID:       p.AccountID,
			RecipientPhone: input.RecipientPhone,
			Amount:         input.Amount,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, res.Message(), TransferResponse{
			SenderBalance: res.SenderBalance,
			Message:       res.Message(),
		})
	}
}

// History lists the caller's transactions, newest first.
// @Summary Transaction history
// @Description List the caller's transaction records with counterparties resolved
// @Tags ledger
// @Produce json
// @Success 200 {object} common.Response{data=HistoryResponse}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/users/history [get]
// @Security Bearer
func History(ledgerSvc *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := middleware.Principal(c)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", policy.ErrUnauthenticated)
		}
		records, err := ledgerSvc.History(c.UserContext(), p.AccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "History failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction history fetched", toHistoryResponse(records))
	}
}
