package auth

import (
	"context"
	"os"
	"time"

	autherrors "zeiterfassung/internal/auth/errors"
	"zeiterfassung/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = time.Minute * 15
	refreshTokenTTL = time.Hour * 24 * 7
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
}

type service struct {
	employeeRepo employee.Repository
}

func NewService(employeeRepo employee.Repository) Service {
	return &service{employeeRepo: employeeRepo}
}

func (s *service) Login(ctx context.Context, username, password string) (string, string, AuthResponse, error) {
	empl, err := s.employeeRepo.FindByUsername(ctx, username)
	if err != nil {
		// Same error for unknown user and wrong password.
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empl.PasswordHash), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !empl.Active {
		return "", "", AuthResponse{}, autherrors.ErrAccountDeactivated
	}

	accessToken, err := s.generateToken(empl.ID.String(), empl.IsAdmin, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(empl.ID.String(), empl.IsAdmin, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, AuthResponse{
		EmployeeID: empl.ID.String(),
		Username:   empl.Username,
		FullName:   empl.FullName,
		IsAdmin:    empl.IsAdmin,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	employeeIDStr, ok := claims["employee_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(employeeIDStr); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	// The admin flag is re-read from the database so a revoked admin does not
	// keep elevated tokens alive through refresh.
	empl, err := s.employeeRepo.FindByID(ctx, employeeIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !empl.Active {
		return "", "", AuthResponse{}, autherrors.ErrAccountDeactivated
	}

	newAccessToken, err := s.generateToken(empl.ID.String(), empl.IsAdmin, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(empl.ID.String(), empl.IsAdmin, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, AuthResponse{
		EmployeeID: empl.ID.String(),
		Username:   empl.Username,
		FullName:   empl.FullName,
		IsAdmin:    empl.IsAdmin,
	}, nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	empl, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	return &AuthResponse{
		EmployeeID: empl.ID.String(),
		Username:   empl.Username,
		FullName:   empl.FullName,
		IsAdmin:    empl.IsAdmin,
	}, nil
}

func (s *service) generateToken(employeeID string, isAdmin bool, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"is_admin":    isAdmin,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
