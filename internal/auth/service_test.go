package auth

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/fuelstation-backend/internal/operators"
	pkgAuth "github.com/angelmondragon/fuelstation-backend/pkg/auth"
	"github.com/angelmondragon/fuelstation-backend/pkg/auth/session"
	"github.com/angelmondragon/fuelstation-backend/pkg/config"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
	"github.com/angelmondragon/fuelstation-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var testJWT = config.JWTConfig{
	Secret:                 "secret",
	Issuer:                 "fuelstation",
	ExpirationMinutes:      30,
	RefreshTokenTTLMinutes: 600,
}

func TestServiceLoginIssuesTokens(t *testing.T) {
	operator := newOperator(t, "admin@fuelstation.local", "pump-secret", enums.OperatorRoleAdmin)
	svc, sessions, _ := buildTestService(t, operator, config.PasswordConfig{})

	resp, err := svc.Login(context.Background(), LoginRequest{Email: " ADMIN@fuelstation.local", Password: "pump-secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.OperatorRoleAdmin {
		t.Fatalf("expected admin role claim, got %s", claims.Role)
	}
	if claims.OperatorID != operator.ID {
		t.Fatalf("expected operator id %s, got %s", operator.ID, claims.OperatorID)
	}
	if sessions.tokens[claims.ID] != resp.RefreshToken {
		t.Fatalf("expected refresh token stored under jti")
	}
	if resp.ExpiresIn != 1800 {
		t.Fatalf("expected expires_in 1800, got %d", resp.ExpiresIn)
	}
	if resp.Operator == nil || resp.Operator.LastLoginAt == nil {
		t.Fatalf("expected operator with last login")
	}
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	operator := newOperator(t, "attendant@fuelstation.local", "right", enums.OperatorRoleAttendant)
	inactive := newOperator(t, "gone@fuelstation.local", "right", enums.OperatorRoleAttendant)
	inactive.IsActive = false

	cases := map[string]struct {
		op  *models.Operator
		req LoginRequest
	}{
		"wrong password": {op: operator, req: LoginRequest{Email: operator.Email, Password: "wrong"}},
		"unknown email":  {op: nil, req: LoginRequest{Email: "nobody@fuelstation.local", Password: "right"}},
		"blank email":    {op: operator, req: LoginRequest{Email: " ", Password: "right"}},
		"inactive":       {op: inactive, req: LoginRequest{Email: inactive.Email, Password: "right"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, sessions, _ := buildTestService(t, tc.op, config.PasswordConfig{})
			_, err := svc.Login(context.Background(), tc.req)
			assertCode(t, err, pkgerrors.CodeUnauthorized)
			if len(sessions.tokens) != 0 {
				t.Fatalf("expected no session to be stored")
			}
		})
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	operator := newOperator(t, "admin@fuelstation.local", "pump-secret", enums.OperatorRoleAdmin)
	svc, sessions, _ := buildTestService(t, operator, config.PasswordConfig{})

	login, err := svc.Login(context.Background(), LoginRequest{Email: operator.Email, Password: "pump-secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	oldClaims, _ := pkgAuth.ParseAccessToken(testJWT, login.AccessToken)

	pair, err := svc.Refresh(context.Background(), RefreshRequest{AccessToken: login.AccessToken, RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	newClaims, err := pkgAuth.ParseAccessToken(testJWT, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if newClaims.ID == oldClaims.ID {
		t.Fatalf("expected a new jti after refresh")
	}
	if _, ok := sessions.tokens[oldClaims.ID]; ok {
		t.Fatalf("expected old session to be removed")
	}
	if sessions.tokens[newClaims.ID] != pair.RefreshToken {
		t.Fatalf("expected rotated refresh token to be stored")
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{AccessToken: login.AccessToken, RefreshToken: login.RefreshToken})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceRefreshRejectsForgedToken(t *testing.T) {
	operator := newOperator(t, "admin@fuelstation.local", "pump-secret", enums.OperatorRoleAdmin)
	svc, _, _ := buildTestService(t, operator, config.PasswordConfig{})

	forged, err := pkgAuth.MintAccessToken(config.JWTConfig{Secret: "other", Issuer: testJWT.Issuer, ExpirationMinutes: 1}, time.Now(), pkgAuth.AccessTokenPayload{
		OperatorID: operator.ID,
		Role:       enums.OperatorRoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	_, err = svc.Refresh(context.Background(), RefreshRequest{AccessToken: forged, RefreshToken: "anything"})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	operator := newOperator(t, "admin@fuelstation.local", "pump-secret", enums.OperatorRoleAdmin)
	svc, sessions, _ := buildTestService(t, operator, config.PasswordConfig{})

	login, err := svc.Login(context.Background(), LoginRequest{Email: operator.Email, Password: "pump-secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, _ := pkgAuth.ParseAccessToken(testJWT, login.AccessToken)

	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.tokens) != 0 {
		t.Fatalf("expected session revoked")
	}
	assertCode(t, svc.Logout(context.Background(), ""), pkgerrors.CodeUnauthorized)
}

func TestServiceLoginRehashesWeakPassword(t *testing.T) {
	operator := newOperator(t, "admin@fuelstation.local", "pump-secret", enums.OperatorRoleAdmin)
	original := operator.PasswordHash
	svc, _, repo := buildTestService(t, operator, config.PasswordConfig{ArgonMemoryKB: 64, ArgonTime: 2})

	if _, err := svc.Login(context.Background(), LoginRequest{Email: operator.Email, Password: "pump-secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if repo.rehashed == "" || repo.rehashed == original {
		t.Fatalf("expected password hash to be upgraded")
	}
	if ok, err := security.VerifyPassword("pump-secret", repo.rehashed); err != nil || !ok {
		t.Fatalf("expected upgraded hash to verify, ok=%v err=%v", ok, err)
	}
}

func buildTestService(t *testing.T, operator *models.Operator, passwordCfg config.PasswordConfig) (Service, *stubSessionManager, *stubOperatorRepo) {
	t.Helper()
	repo := &stubOperatorRepo{operator: operator}
	sessions := &stubSessionManager{tokens: map[string]string{}, owners: map[string]string{}}
	svc, err := NewService(ServiceParams{
		OperatorRepo:   repo,
		SessionManager: sessions,
		JWTConfig:      testJWT,
		PasswordConfig: passwordCfg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions, repo
}

func newOperator(t *testing.T, email, password string, role enums.OperatorRole) *models.Operator {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.Operator{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  "Operator",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

type stubOperatorRepo struct {
	operator *models.Operator
	rehashed string
}

func (s *stubOperatorRepo) FindByEmail(ctx context.Context, email string) (*models.Operator, error) {
	if s.operator == nil || s.operator.Email != operators.NormalizeEmail(email) {
		return nil, gorm.ErrRecordNotFound
	}
	return s.operator, nil
}

func (s *stubOperatorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Operator, error) {
	if s.operator == nil || s.operator.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.operator, nil
}

func (s *stubOperatorRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

func (s *stubOperatorRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	s.rehashed = hash
	return nil
}

type stubSessionManager struct {
	tokens map[string]string
	owners map[string]string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID, operatorID string) (string, error) {
	token := "refresh-" + accessID
	s.tokens[accessID] = token
	s.owners[accessID] = operatorID
	return token, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (session.Rotation, error) {
	stored, ok := s.tokens[oldAccessID]
	if !ok || stored != provided {
		return session.Rotation{}, session.ErrInvalidRefreshToken
	}
	owner := s.owners[oldAccessID]
	delete(s.tokens, oldAccessID)
	delete(s.owners, oldAccessID)

	newID := session.NewAccessID()
	token, _ := s.Generate(ctx, newID, owner)
	return session.Rotation{AccessID: newID, RefreshToken: token, OperatorID: owner}, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	delete(s.tokens, accessID)
	delete(s.owners, accessID)
	return nil
}
