package service

import (
	"errors"
	"fmt"

	"go-coffee-ops/internal/model"
	"go-coffee-ops/internal/repository"
	"go-coffee-ops/pkg/jwt"
	"go-coffee-ops/pkg/validator"
)

type AuthService interface {
	Register(req *RegisterRequest) (*LoginResponse, error)
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*model.TenantResponse, error)
}

type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	BusinessName string `json:"business_name" validate:"required"`
}

type LoginResponse struct {
	Token  string               `json:"token"`
	Tenant model.TenantResponse `json:"tenant"`
}

type authService struct {
	tenantRepo repository.TenantRepository
}

func NewAuthService(tenantRepo repository.TenantRepository) AuthService {
	return &authService{tenantRepo: tenantRepo}
}

func (s *authService) Register(req *RegisterRequest) (*LoginResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.tenantRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailTaken
	}

	tenant := &model.Tenant{
		Email:        req.Email,
		BusinessName: req.BusinessName,
		IsActive:     true,
	}
	if err := tenant.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.tenantRepo.Create(tenant); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(tenant.ID, tenant.Email, tenant.BusinessName)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{Token: token, Tenant: tenant.ToResponse()}, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	tenant, err := s.tenantRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !tenant.IsActive {
		return nil, ErrTenantInactive
	}

	if !tenant.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(tenant.ID, tenant.Email, tenant.BusinessName)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	_ = s.tenantRepo.TouchLastSeen(tenant.ID)

	return &LoginResponse{Token: token, Tenant: tenant.ToResponse()}, nil
}

func (s *authService) ValidateToken(tokenString string) (*model.TenantResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(claims.TenantID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !tenant.IsActive {
		return nil, ErrTenantInactive
	}

	response := tenant.ToResponse()
	return &response, nil
}
