package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"cabzii/internal/auth"
	"cabzii/internal/domain"
	"cabzii/internal/domain/models"
	"cabzii/internal/utils"
)

// AdminStore is the admin persistence surface.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (models.AdminUser, error)
	FindByID(ctx context.Context, id string) (models.AdminUser, error)
	Insert(ctx context.Context, u models.AdminUser) (models.AdminUser, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

// AdminService handles admin registration and password login. Client-facing
// auth is OTP-only; email+password exists for the back office alone.
type AdminService struct {
	Store     AdminStore
	Tokens    auth.Manager
	RequestID string
}

func normalizeEmail(email string) string {
	return strings.ToLower(utils.TrimOrEmpty(email))
}

// Register creates an admin with a bcrypt-hashed password. A duplicate email
// surfaces as a Conflict via the unique index.
func (s AdminService) Register(ctx context.Context, email, password, role string) (models.AdminUser, error) {
	email = normalizeEmail(email)
	if email == "" {
		return models.AdminUser{}, domain.ValidationError{Field: "email", Msg: "email is required"}
	}
	if len(password) < 6 {
		return models.AdminUser{}, domain.ValidationError{Field: "password", Msg: "password must be at least 6 characters"}
	}
	if role == "" {
		role = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.AdminUser{}, domain.InternalError{Msg: "hash password", Err: err}
	}

	u, err := s.Store.Insert(ctx, models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return models.AdminUser{}, err
	}
	utils.LogEvent(s.RequestID, "admin", "register", u.ID.Hex())
	return u, nil
}

// Login verifies the password and issues a 1-hour admin token. An unknown
// email and a wrong password return the same Unauthorized message.
func (s AdminService) Login(ctx context.Context, email, password string) (models.AdminUser, string, error) {
	u, err := s.Store.FindByEmail(ctx, normalizeEmail(email))
	if domain.IsNotFound(err) {
		return models.AdminUser{}, "", domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	if err != nil {
		return models.AdminUser{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.AdminUser{}, "", domain.UnauthorizedError{Msg: "invalid email or password"}
	}

	token, err := s.Tokens.Issue(auth.Claims{
		PrincipalID: u.ID.Hex(),
		Role:        auth.RoleAdmin,
	})
	if err != nil {
		return models.AdminUser{}, "", err
	}
	utils.LogEvent(s.RequestID, "admin", "login", u.ID.Hex())
	return u, token, nil
}

// Profile returns the admin record for the authenticated principal.
func (s AdminService) Profile(ctx context.Context, id string) (models.AdminUser, error) {
	return s.Store.FindByID(ctx, id)
}

// ResetPassword verifies the current password before replacing it.
func (s AdminService) ResetPassword(ctx context.Context, id, current, next string) error {
	u, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return domain.UnauthorizedError{Msg: "current password is incorrect"}
	}
	if len(next) < 6 {
		return domain.ValidationError{Field: "newPassword", Msg: "password must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "hash password", Err: err}
	}
	if err := s.Store.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "admin", "reset_password", id)
	return nil
}
