package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
	"github.com/leiritrix/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria del UserRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	return nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id string, role string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) AdminExists(_ context.Context) (bool, error) {
	for _, u := range r.byID {
		if u.Role == entity.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var (
	testJWTCfg = JWTConfig{Secret: "test-secret-key-for-unit-tests", ExpHours: 1, Issuer: "crm-test"}
	testAdmin  = BootstrapAdmin{Email: "admin@leiritrix.pt", Password: "admin123", Name: "Administrador"}
)

func newTestAuthUC() (*AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewAuthUseCase(repo, testJWTCfg, testAdmin), repo
}

func registerSeller(t *testing.T, uc *AuthUseCase, email, password string) *dto.UserResponse {
	t.Helper()
	u, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    email,
		Name:     "Vendedor Test",
		Password: password,
	})
	require.NoError(t, err)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

// Sin rol explícito el registro asigna salesperson y deja la cuenta activa.
func TestRegister_RolPorDefecto(t *testing.T) {
	uc, repo := newTestAuthUC()

	u := registerSeller(t, uc, "ana@leiritrix.pt", "secreta123")

	assert.Equal(t, entity.RoleSalesperson, u.Role)
	assert.True(t, u.Active)

	stored, err := repo.GetByEmail(context.Background(), "ana@leiritrix.pt")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newTestAuthUC()
	registerSeller(t, uc, "ana@leiritrix.pt", "secreta123")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "ana@leiritrix.pt",
		Name:     "Otra Ana",
		Password: "otra456",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_EmailInvalido(t *testing.T) {
	uc, _ := newTestAuthUC()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "no-es-un-email",
		Name:     "X",
		Password: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_RolDesconocido(t *testing.T) {
	uc, _ := newTestAuthUC()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "ana@leiritrix.pt",
		Name:     "Ana",
		Password: "secreta123",
		Role:     "gerente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc, _ := newTestAuthUC()
	registerSeller(t, uc, "ana@leiritrix.pt", "secreta123")

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@leiritrix.pt",
		Password: "secreta123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@leiritrix.pt", resp.User.Email)
	assert.Equal(t, entity.RoleSalesperson, resp.User.Role)
}

// Password incorrecto y email desconocido devuelven el mismo error, sin token.
func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newTestAuthUC()
	registerSeller(t, uc, "ana@leiritrix.pt", "secreta123")

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@leiritrix.pt",
		Password: "equivocada",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, resp)
}

func TestLogin_EmailDesconocido(t *testing.T) {
	uc, _ := newTestAuthUC()

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@leiritrix.pt",
		Password: "loquesea",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, resp)
}

// Una cuenta desactivada no puede iniciar sesión aunque el password sea correcto.
func TestLogin_CuentaDesactivada(t *testing.T) {
	uc, repo := newTestAuthUC()
	u := registerSeller(t, uc, "ana@leiritrix.pt", "secreta123")
	require.NoError(t, repo.SetActive(context.Background(), u.ID, false))

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@leiritrix.pt",
		Password: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Init
// ──────────────────────────────────────────────────────────────────────────────

// La primera llamada crea el admin de arranque y devuelve sus credenciales.
func TestInit_CreaAdminDeArranque(t *testing.T) {
	uc, repo := newTestAuthUC()

	resp, err := uc.Init(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testAdmin.Email, resp.AdminEmail)
	assert.Equal(t, testAdmin.Password, resp.AdminPassword)

	admin, err := repo.GetByEmail(context.Background(), testAdmin.Email)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	// El admin de arranque puede iniciar sesión con las credenciales devueltas.
	login, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    testAdmin.Email,
		Password: testAdmin.Password,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

// La segunda llamada es un no-op: no crea otro admin ni expone credenciales.
func TestInit_Idempotente(t *testing.T) {
	uc, repo := newTestAuthUC()

	_, err := uc.Init(context.Background())
	require.NoError(t, err)

	resp, err := uc.Init(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.AdminEmail, "la segunda llamada no debe exponer credenciales")
	assert.Empty(t, resp.AdminPassword)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1, "solo debe existir un admin de arranque")
}
