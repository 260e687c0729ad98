package services

import (
	"github.com/blogem/battlenet-login/repositories"
)

// Services holds all service instances
type Services struct {
	Accounts AccountService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		Accounts: NewAccountService(repos.Accounts, repos.Audit),
	}
}
