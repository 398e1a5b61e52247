package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cabzii/internal/auth"
	"cabzii/internal/domain"
	"cabzii/internal/domain/models"
)

type memAdmins struct {
	admins map[string]*models.AdminUser // keyed by hex ID
}

func newMemAdmins() *memAdmins { return &memAdmins{admins: map[string]*models.AdminUser{}} }

func (m *memAdmins) FindByEmail(_ context.Context, email string) (models.AdminUser, error) {
	for _, u := range m.admins {
		if u.Email == email {
			return *u, nil
		}
	}
	return models.AdminUser{}, domain.NotFoundError{Resource: "admin"}
}

func (m *memAdmins) FindByID(_ context.Context, id string) (models.AdminUser, error) {
	u, ok := m.admins[id]
	if !ok {
		return models.AdminUser{}, domain.NotFoundError{Resource: "admin"}
	}
	return *u, nil
}

func (m *memAdmins) Insert(_ context.Context, u models.AdminUser) (models.AdminUser, error) {
	for _, q := range m.admins {
		if q.Email == u.Email {
			return models.AdminUser{}, domain.ConflictError{Resource: "admin", Msg: "email already registered"}
		}
	}
	u.ID = primitive.NewObjectID()
	stored := u
	m.admins[u.ID.Hex()] = &stored
	return u, nil
}

func (m *memAdmins) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	u, ok := m.admins[id.Hex()]
	if !ok {
		return domain.NotFoundError{Resource: "admin"}
	}
	u.PasswordHash = hash
	return nil
}

func newAdminService() AdminService {
	return AdminService{Store: newMemAdmins(), Tokens: auth.NewManager("test-secret")}
}

func TestAdminRegisterAndLogin(t *testing.T) {
	svc := newAdminService()

	u, err := svc.Register(context.Background(), "  Admin@Cabzii.IN ", "s3cret1", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if u.Email != "admin@cabzii.in" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Role != "admin" {
		t.Fatalf("default role = %q", u.Role)
	}
	if u.PasswordHash == "s3cret1" || u.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}

	logged, token, err := svc.Login(context.Background(), "admin@cabzii.in", "s3cret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if logged.ID != u.ID {
		t.Fatalf("logged in wrong admin")
	}

	claims, err := svc.Tokens.Verify(token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Role != auth.RoleAdmin || claims.PrincipalID != u.ID.Hex() {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestAdminLoginWrongCredentials(t *testing.T) {
	svc := newAdminService()
	if _, err := svc.Register(context.Background(), "admin@cabzii.in", "s3cret1", ""); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, _, errWrongPass := svc.Login(context.Background(), "admin@cabzii.in", "wrong")
	_, _, errUnknown := svc.Login(context.Background(), "ghost@cabzii.in", "s3cret1")
	if !domain.IsUnauthorized(errWrongPass) || !domain.IsUnauthorized(errUnknown) {
		t.Fatalf("expected unauthorized, got %v / %v", errWrongPass, errUnknown)
	}
	// both failures carry the same message; no account probing
	if errWrongPass.Error() != errUnknown.Error() {
		t.Fatalf("messages differ: %q vs %q", errWrongPass.Error(), errUnknown.Error())
	}
}

func TestAdminRegisterValidation(t *testing.T) {
	svc := newAdminService()
	if _, err := svc.Register(context.Background(), "", "s3cret1", ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@b.c", "short", ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
}

func TestAdminDuplicateEmail(t *testing.T) {
	svc := newAdminService()
	if _, err := svc.Register(context.Background(), "admin@cabzii.in", "s3cret1", ""); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register(context.Background(), "ADMIN@cabzii.in", "another1", ""); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAdminResetPassword(t *testing.T) {
	svc := newAdminService()
	u, err := svc.Register(context.Background(), "admin@cabzii.in", "s3cret1", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), u.ID.Hex(), "wrong", "n3wpass"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for wrong current password, got %v", err)
	}
	if err := svc.ResetPassword(context.Background(), u.ID.Hex(), "s3cret1", "short"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short new password, got %v", err)
	}
	if err := svc.ResetPassword(context.Background(), u.ID.Hex(), "s3cret1", "n3wpass"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "admin@cabzii.in", "s3cret1"); err == nil {
		t.Fatalf("old password still works")
	}
	if _, _, err := svc.Login(context.Background(), "admin@cabzii.in", "n3wpass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
