// Package auth contiene los casos de uso de autenticación: registro, login,
// perfil del usuario actual e inicialización del sistema.
package auth

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
	"github.com/leiritrix/crm-api/internal/domain/repository"
	"github.com/leiritrix/crm-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// BootstrapAdmin credenciales del admin creado por Init cuando no existe ninguno.
type BootstrapAdmin struct {
	Email    string
	Password string
	Name     string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	jwtCfg    JWTConfig
	bootstrap BootstrapAdmin
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, bootstrap BootstrapAdmin) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, bootstrap: bootstrap}
}

// Register crea un usuario nuevo (operación reservada a admins; el gate de rol
// vive en el middleware HTTP). Hashea el password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado y
// ErrInvalidInput si el email o el rol no son válidos.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleSalesperson
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Name:         in.Name,
		Role:         role,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera el JWT y retorna token + usuario.
// Un password incorrecto y un email desconocido devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrAccountDisabled
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// Init inicializa el sistema: si ya existe un admin no hace nada; si no,
// crea el admin de arranque con las credenciales configuradas. Idempotente.
func (uc *AuthUseCase) Init(ctx context.Context) (*dto.InitResponse, error) {
	exists, err := uc.userRepo.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return &dto.InitResponse{Message: "sistema ya inicializado"}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(uc.bootstrap.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        uc.bootstrap.Email,
		Name:         uc.bootstrap.Name,
		Role:         entity.RoleAdmin,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return &dto.InitResponse{
		Message:       "sistema inicializado",
		AdminEmail:    uc.bootstrap.Email,
		AdminPassword: uc.bootstrap.Password,
	}, nil
}

// ToUserResponse proyecta la entidad a la respuesta pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Active: u.Active,
	}
}
