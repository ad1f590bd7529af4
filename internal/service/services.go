package service

import (
	"github.com/MKhiriev/escrow-api/internal/config"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/internal/store"
	"github.com/MKhiriev/escrow-api/internal/validators"
)

type Services struct {
	TokenService    TokenService
	AuthService     AuthService
	UserService     UserService
	JobService      JobService
	ProposalService ProposalService
	SupportService  SupportService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	validator := validators.NewRequestValidator()
	tokens := NewTokenService(cfg.App, logger)

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		TokenService:    tokens,
		AuthService:     NewAuthService(storages.UserRepository, tokens, validator, cfg.App, logger),
		UserService:     NewUserService(storages.UserRepository, validator, logger),
		JobService:      NewJobService(storages.JobRepository, validator, logger),
		ProposalService: NewProposalService(storages.ProposalRepository, storages.JobRepository, validator, logger),
		SupportService:  NewSupportService(validator),
		AppInfoService:  appInfo,
	}, nil
}
