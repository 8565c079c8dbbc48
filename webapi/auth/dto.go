package auth

import "github.com/amirasaad/ledger/webapi/common"

// RegisterInput represents the request body for user registration.
type RegisterInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"required,len=10,numeric"`
	Aadhaar     string `json:"aadhaar" validate:"required,len=12,numeric"`
	AccountType string `json:"accountType" validate:"required,oneof=savings current"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput represents the request body for phone + password authentication.
type LoginInput struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserTokenResponse is returned by registration and user login.
type UserTokenResponse struct {
	Token string                 `json:"token"`
	User  common.AccountResponse `json:"user"`
}

// AdminTokenResponse is returned by admin login.
type AdminTokenResponse struct {
	Token string                 `json:"token"`
	Admin common.AccountResponse `json:"admin"`
}
