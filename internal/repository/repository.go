package repository

import (
	"context"
	"errors"

	"shadowgram/internal/domain"
)

var (
	// ErrNotFound indica que el registro buscado no existe.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateAccount indica que ya existe una cuenta con ese nombre.
	ErrDuplicateAccount = errors.New("account already exists")
)

// AccountRepository define el contrato de persistencia para cuentas.
// Create asigna el id secuencial y falla con ErrDuplicateAccount si el
// nombre ya está tomado (comparación exacta, sensible a mayúsculas).
type AccountRepository interface {
	Create(ctx context.Context, name, passwordHash string) (domain.Account, error)
	GetByName(ctx context.Context, name string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

// MessageRepository define el contrato de persistencia para mensajes.
// La colección es append-only: no existe update ni delete.
type MessageRepository interface {
	Append(ctx context.Context, message domain.Message) error
	ListAll(ctx context.Context) ([]domain.Message, error)
	ListByPair(ctx context.Context, a, b string) ([]domain.Message, error)
}

// diskAccount es la representación persistida de una cuenta. El hash va con
// tag "password" para mantener compatibilidad con el layout original.
type diskAccount struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (d diskAccount) toDomain() domain.Account {
	return domain.Account{ID: d.ID, Name: d.Name, PasswordHash: d.Password}
}

func fromAccount(a domain.Account) diskAccount {
	return diskAccount{ID: a.ID, Name: a.Name, Password: a.PasswordHash}
}
