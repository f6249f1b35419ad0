package services

import (
	"errors"

	"propmatch_backend/internal/auth"
	"propmatch_backend/internal/logger"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/repositories"
	"propmatch_backend/internal/services/dto"
	"propmatch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(db *gorm.DB, userID string) (*dto.UserDTO, error)
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
	tokens           *auth.TokenManager
}

func NewAuthService(
	userRepo repositories.UserRepository,
	professionalRepo repositories.ProfessionalRepository,
	tokens *auth.TokenManager,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
		tokens:           tokens,
	}
}

// Register creates the account and, for professionals, an Unverified profile
// in the same transaction. Admins are seeded, never self-registered.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	role, ok := models.ParseUserRole(req.Role)
	if !ok {
		return nil, apperrors.ErrRoleNotFound
	}
	if role == models.UserRoleAdmin {
		return nil, apperrors.ErrAdminSelfRegistration
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx, err := begin(db, "auth")
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	exists, err := s.userRepo.ExistsByEmail(tx, req.Email)
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "auth")
	}
	if exists {
		return nil, apperrors.ErrDuplicateUser
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.userRepo.Create(tx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, apperrors.DependencyFailure(err, "auth")
	}

	if role == models.UserRoleProfessional {
		profile := &models.ProfessionalProfile{
			UserID:             user.ID,
			FirstLogin:         true,
			VerificationStatus: models.VerificationStatusUnverified,
		}
		if pt, ok := models.ParseProfessionalType(req.ProfessionalType); ok {
			profile.ProfessionalType = pt
		}
		if err := s.professionalRepo.Create(tx, profile); err != nil {
			return nil, storeError(err, "professional")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DependencyFailure(err, "auth")
	}

	logger.CtxInfo(db.Statement.Context, "user registered", "user_id", user.ID, "role", user.Role)

	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DependencyFailure(err, "auth")
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserDTO(user),
	}, nil
}

// Me resolves the token subject. A subject that no longer exists is treated as an invalid token.
func (s *AuthServiceImpl) Me(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.DependencyFailure(err, "auth")
	}

	out := dto.NewUserDTO(user)
	return &out, nil
}
