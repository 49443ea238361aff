package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/buyitem-api/internal/application/dto"
	"github.com/jhoicas/buyitem-api/internal/domain"
	"github.com/jhoicas/buyitem-api/internal/domain/entity"
	"github.com/jhoicas/buyitem-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create registra un usuario; nombre y apellido son obligatorios.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, fmt.Errorf("%w: firstName y lastName son obligatorios", domain.ErrInvalidInput)
	}
	user := &entity.User{FirstName: first, LastName: last}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID. ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return entityToUserResponse(user), nil
}

// GetByIDs devuelve los usuarios encontrados y los IDs que no existen.
func (uc *UserUseCase) GetByIDs(ctx context.Context, ids []int64) (*dto.UserBatchResponse, error) {
	ids = uniqueIDs(ids)
	list, err := uc.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]bool, len(list))
	out := &dto.UserBatchResponse{Users: make([]dto.UserResponse, 0, len(list))}
	for _, u := range list {
		found[u.ID] = true
		out.Users = append(out.Users, *entityToUserResponse(u))
	}
	out.Missing = missingIDs(ids, found)
	return out, nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		users = append(users, *entityToUserResponse(u))
	}
	return users, nil
}

// Update sobrescribe firstName/lastName solo si el valor recibido no está en blanco.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if v, ok := nonBlank(in.FirstName); ok {
		user.FirstName = v
	}
	if v, ok := nonBlank(in.LastName); ok {
		user.LastName = v
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Delete elimina un usuario por ID. ErrUserNotFound si no existe.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// DeleteByUser elimina el usuario por su identidad.
func (uc *UserUseCase) DeleteByUser(ctx context.Context, user *entity.User) error {
	if user == nil {
		return fmt.Errorf("%w: usuario nulo", domain.ErrInvalidInput)
	}
	return uc.repo.Delete(ctx, user.ID)
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		UserUID:   u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
