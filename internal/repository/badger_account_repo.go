package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"shadowgram/internal/domain"
)

const accountKeyPrefix = "account:name:"

// BadgerAccountRepository implementa AccountRepository sobre BadgerDB.
// Los ids provienen de una badger.Sequence: contador monotónico durable,
// sin colisiones aunque se borren registros fuera de banda.
type BadgerAccountRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewBadgerAccountRepository(db *badger.DB) (*BadgerAccountRepository, error) {
	seq, err := db.GetSequence([]byte("seq:account"), 1)
	if err != nil {
		return nil, err
	}
	return &BadgerAccountRepository{db: db, seq: seq}, nil
}

// Close libera la secuencia de ids. Llamar antes de cerrar la base.
func (r *BadgerAccountRepository) Close() error {
	return r.seq.Release()
}

func (r *BadgerAccountRepository) Create(_ context.Context, name, passwordHash string) (domain.Account, error) {
	next, err := r.seq.Next()
	if err != nil {
		return domain.Account{}, err
	}
	account := domain.Account{
		ID:           strconv.FormatUint(next+1, 10),
		Name:         name,
		PasswordHash: passwordHash,
	}
	data, err := json.Marshal(fromAccount(account))
	if err != nil {
		return domain.Account{}, err
	}

	key := []byte(accountKeyPrefix + name)
	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return ErrDuplicateAccount
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (r *BadgerAccountRepository) GetByName(_ context.Context, name string) (domain.Account, error) {
	var disk diskAccount
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(accountKeyPrefix + name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &disk)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Account{}, ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	return disk.toDomain(), nil
}

func (r *BadgerAccountRepository) List(_ context.Context) ([]domain.Account, error) {
	accounts := []domain.Account{}
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(accountKeyPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var disk diskAccount
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &disk)
			})
			if err != nil {
				return err
			}
			accounts = append(accounts, disk.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
