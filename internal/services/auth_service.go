package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/mailer"
)

// AuthService handles registration, login, token issuing/verification and the
// password reset flow.
type AuthService struct {
	userRepo     repositories.UserRepository
	mail         *mailer.Mailer // nil when SMTP is not configured
	jwtSecret    []byte
	tokenDurat   time.Duration
	resetBaseURL string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, resetBaseURL string, mail *mailer.Mailer) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		mail:         mail,
		jwtSecret:    []byte(jwtSecret),
		tokenDurat:   time.Hour,
		resetBaseURL: resetBaseURL,
	}
}

// RegisterUser creates an account with a hashed password and returns the user
// together with a fresh token.
func (s *AuthService) RegisterUser(name, email, password string, role models.Role) (*models.User, string, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("Error checking existing user: %v", err)
		return nil, "", apperrors.NewInternal()
	}
	if existing != nil {
		return nil, "", apperrors.NewBadRequest("User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginUser authenticates by email and password. Both unknown email and wrong
// password report the same "Invalid credentials" failure.
func (s *AuthService) LoginUser(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", apperrors.NewBadRequest("Invalid credentials")
		}
		log.Printf("Error fetching user for login: %v", err)
		return nil, "", apperrors.NewInternal()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.NewBadRequest("Invalid credentials")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken issues a signed HS256 token carrying id, email and role.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.tokenDurat).Unix(),
		"iat":   time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and verifies a token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// ForgotPassword stores a one-hour reset token on the account and mails the
// reset link.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFound("User not found")
		}
		log.Printf("Error fetching user for password reset: %v", err)
		return apperrors.NewInternal()
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	resetToken := hex.EncodeToString(raw)
	expires := time.Now().Add(time.Hour)

	user.ResetPasswordToken = &resetToken
	user.ResetPasswordExpires = &expires
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if s.mail == nil {
		log.Println("Mailer is not configured. Skipping password reset mail.")
		return nil
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s&email=%s", s.resetBaseURL, resetToken, email)
	if err := s.mail.SendPasswordReset(email, resetLink); err != nil {
		log.Printf("Warning: failed to send password reset mail to %s: %v", email, err)
		return apperrors.NewInternal()
	}
	return nil
}

// ResetPassword verifies the reset token and replaces the password.
func (s *AuthService) ResetPassword(email, token, newPassword string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewBadRequest("Invalid Token")
		}
		log.Printf("Error fetching user for password reset: %v", err)
		return apperrors.NewInternal()
	}

	if user.ResetPasswordToken == nil || *user.ResetPasswordToken != token ||
		user.ResetPasswordExpires == nil || user.ResetPasswordExpires.Before(time.Now()) {
		return apperrors.NewBadRequest("Invalid Token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
