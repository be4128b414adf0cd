package usecase

import (
	"context"

	"github.com/leiritrix/crm-api/internal/application/auth"
	"github.com/leiritrix/crm-api/internal/application/dto"
	"github.com/leiritrix/crm-api/internal/domain"
	"github.com/leiritrix/crm-api/internal/domain/entity"
	"github.com/leiritrix/crm-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (operaciones reservadas a admins).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// List devuelve todos los usuarios sin el password hash.
func (uc *UserUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// ToggleActive invierte el flag active del usuario y devuelve el nuevo valor.
func (uc *UserUseCase) ToggleActive(ctx context.Context, id string) (bool, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, domain.ErrUserNotFound
	}
	newActive := !user.Active
	if err := uc.userRepo.SetActive(ctx, id, newActive); err != nil {
		return false, err
	}
	return newActive, nil
}

// ChangeRole asigna un nuevo rol al usuario.
func (uc *UserUseCase) ChangeRole(ctx context.Context, id, role string) error {
	if !entity.ValidRole(role) {
		return domain.ErrInvalidInput
	}
	return uc.userRepo.SetRole(ctx, id, role)
}
