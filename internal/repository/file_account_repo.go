package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"shadowgram/internal/domain"
)

// FileAccountRepository implementa AccountRepository sobre un único archivo
// JSON (layout legado users.json). Cada operación de escritura relee y
// reescribe la colección completa; el mutex serializa el ciclo
// load-modify-save para que dos escritores concurrentes no pierdan registros.
type FileAccountRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileAccountRepository(path string) *FileAccountRepository {
	return &FileAccountRepository{path: path}
}

func (r *FileAccountRepository) Create(_ context.Context, name, passwordHash string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load()
	if err != nil {
		return domain.Account{}, err
	}
	for _, disk := range accounts {
		if disk.Name == name {
			return domain.Account{}, ErrDuplicateAccount
		}
	}

	// Las cuentas nunca se borran, así length+1 se mantiene monotónico.
	account := domain.Account{
		ID:           strconv.Itoa(len(accounts) + 1),
		Name:         name,
		PasswordHash: passwordHash,
	}
	accounts = append(accounts, fromAccount(account))
	if err := r.save(accounts); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (r *FileAccountRepository) GetByName(_ context.Context, name string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load()
	if err != nil {
		return domain.Account{}, err
	}
	for _, disk := range accounts {
		if disk.Name == name {
			return disk.toDomain(), nil
		}
	}
	return domain.Account{}, ErrNotFound
}

func (r *FileAccountRepository) List(_ context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load()
	if err != nil {
		return nil, err
	}
	result := make([]domain.Account, 0, len(accounts))
	for _, disk := range accounts {
		result = append(result, disk.toDomain())
	}
	return result, nil
}

// load lee la colección completa. Archivo ausente equivale a colección
// vacía (primer arranque); contenido corrupto es un error, no se enmascara.
func (r *FileAccountRepository) load() ([]diskAccount, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return []diskAccount{}, nil
	}
	if err != nil {
		return nil, err
	}
	var accounts []diskAccount
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return accounts, nil
}

func (r *FileAccountRepository) save(accounts []diskAccount) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(r.path, data)
}

// writeFileAtomic escribe en un temporal y renombra, para que un crash a
// mitad de escritura no deje el archivo truncado.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
