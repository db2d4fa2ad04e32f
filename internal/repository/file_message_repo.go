package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/samber/lo"

	"shadowgram/internal/domain"
)

// FileMessageRepository implementa MessageRepository sobre un único archivo
// JSON (layout legado posts.json). Mismo esquema que FileAccountRepository:
// snapshot completo por operación, serializado por mutex.
type FileMessageRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileMessageRepository(path string) *FileMessageRepository {
	return &FileMessageRepository{path: path}
}

func (r *FileMessageRepository) Append(_ context.Context, message domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, err := r.load()
	if err != nil {
		return err
	}
	messages = append(messages, message)
	return r.save(messages)
}

func (r *FileMessageRepository) ListAll(_ context.Context) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *FileMessageRepository) ListByPair(_ context.Context, a, b string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, err := r.load()
	if err != nil {
		return nil, err
	}
	return lo.Filter(messages, func(m domain.Message, _ int) bool {
		return m.BelongsToPair(a, b)
	}), nil
}

func (r *FileMessageRepository) load() ([]domain.Message, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return []domain.Message{}, nil
	}
	if err != nil {
		return nil, err
	}
	var messages []domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return messages, nil
}

func (r *FileMessageRepository) save(messages []domain.Message) error {
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(r.path, data)
}
