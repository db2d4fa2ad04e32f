package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"

	"shadowgram/internal/domain"
)

const messageKeyPrefix = "msg:"

// BadgerMessageRepository implementa MessageRepository sobre BadgerDB.
type BadgerMessageRepository struct {
	db *badger.DB
}

func NewBadgerMessageRepository(db *badger.DB) *BadgerMessageRepository {
	return &BadgerMessageRepository{db: db}
}

// Append persiste un mensaje. La clave "msg:{ts_padded}:{id}" ordena por
// tiempo en orden lexicográfico; el id rompe empates dentro del mismo
// nanosegundo, así dos appends concurrentes nunca se pisan.
func (r *BadgerMessageRepository) Append(_ context.Context, message domain.Message) error {
	key := fmt.Sprintf("%s%019d:%s", messageKeyPrefix, message.CreatedAt.UnixNano(), message.ID)
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (r *BadgerMessageRepository) ListAll(_ context.Context) ([]domain.Message, error) {
	messages := []domain.Message{}
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messageKeyPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var message domain.Message
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &message)
			})
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListByPair devuelve los mensajes del par no ordenado {a, b} en orden de
// inserción. El filtrado ocurre tras el scan: el volumen esperado es trivial.
func (r *BadgerMessageRepository) ListByPair(ctx context.Context, a, b string) ([]domain.Message, error) {
	messages, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(messages, func(m domain.Message, _ int) bool {
		return m.BelongsToPair(a, b)
	}), nil
}
