package service

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shadowgram/internal/domain"
	"shadowgram/internal/repository"
)

var (
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountService coordina registro, autenticación y listado de cuentas.
type AccountService struct {
	logger     *zap.Logger
	accounts   repository.AccountRepository
	bcryptCost int
}

// NewAccountService crea el servicio; cost <= 0 usa bcrypt.DefaultCost.
func NewAccountService(logger *zap.Logger, accounts repository.AccountRepository, bcryptCost int) *AccountService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{
		logger:     logger,
		accounts:   accounts,
		bcryptCost: bcryptCost,
	}
}

// List devuelve todas las cuentas proyectadas a {id, name}.
func (s *AccountService) List(ctx context.Context) ([]domain.PublicAccount, error) {
	if s.accounts == nil {
		return nil, errors.New("account service not configured")
	}
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(accounts, func(a domain.Account, _ int) domain.PublicAccount {
		return a.Public()
	}), nil
}

// Register crea una cuenta nueva. El nombre se compara exacto, sensible a
// mayúsculas; la contraseña se acepta tal cual (vacía incluida) y sólo se
// persiste su hash bcrypt.
func (s *AccountService) Register(ctx context.Context, name, password string) (domain.PublicAccount, error) {
	if s.accounts == nil {
		return domain.PublicAccount{}, errors.New("account service not configured")
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return domain.PublicAccount{}, err
	}

	account, err := s.accounts.Create(ctx, name, string(hashBytes))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return domain.PublicAccount{}, ErrDuplicateAccount
		}
		return domain.PublicAccount{}, err
	}

	s.logger.Info("account registered", zap.String("name", account.Name), zap.String("id", account.ID))
	return account.Public(), nil
}

// Authenticate valida las credenciales y devuelve la proyección pública.
// No emite tokens: el cliente recuerda el nombre autenticado por su cuenta.
func (s *AccountService) Authenticate(ctx context.Context, name, password string) (domain.PublicAccount, error) {
	if s.accounts == nil {
		return domain.PublicAccount{}, errors.New("account service not configured")
	}

	account, err := s.accounts.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.PublicAccount{}, ErrAccountNotFound
		}
		return domain.PublicAccount{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return domain.PublicAccount{}, ErrInvalidCredentials
	}
	return account.Public(), nil
}
