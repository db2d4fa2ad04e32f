package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"shadowgram/internal/domain"
)

func TestFileAccountRepoStartsEmpty(t *testing.T) {
	repo := NewFileAccountRepository(filepath.Join(t.TempDir(), "users.json"))

	accounts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list on absent file failed: %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected empty collection, got %d", len(accounts))
	}
}

func TestFileAccountRepoCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := NewFileAccountRepository(path)

	if _, err := repo.List(context.Background()); err == nil {
		t.Fatalf("corrupt file must not degrade to empty collection")
	}
	if _, err := repo.GetByName(context.Background(), "alice"); err == nil {
		t.Fatalf("corrupt file must surface an error on lookup")
	}
}

func TestFileAccountRepoSequentialIDs(t *testing.T) {
	repo := NewFileAccountRepository(filepath.Join(t.TempDir(), "users.json"))

	for i, name := range []string{"alice", "bob"} {
		account, err := repo.Create(context.Background(), name, "hash")
		if err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
		if want := fmt.Sprintf("%d", i+1); account.ID != want {
			t.Fatalf("expected id %s, got %s", want, account.ID)
		}
	}
}

func TestFileAccountRepoDuplicate(t *testing.T) {
	repo := NewFileAccountRepository(filepath.Join(t.TempDir(), "users.json"))

	if _, err := repo.Create(context.Background(), "alice", "hash"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(context.Background(), "alice", "hash2"); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	accounts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("failed create must not grow the file, got %d", len(accounts))
	}
}

func TestFileAccountRepoReadsLegacyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	legacy := `[{"id":"1","name":"alice","password":"$2b$10$abcdefghijklmnopqrstuv"}]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := NewFileAccountRepository(path)

	account, err := repo.GetByName(context.Background(), "alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if account.ID != "1" || account.PasswordHash != "$2b$10$abcdefghijklmnopqrstuv" {
		t.Fatalf("legacy record not mapped: %+v", account)
	}
}

func TestFileMessageRepoPairFilterIsSymmetric(t *testing.T) {
	repo := NewFileMessageRepository(filepath.Join(t.TempDir(), "posts.json"))
	ctx := context.Background()
	now := time.Now().UTC()

	seed := []domain.Message{
		{ID: "m1", Sender: "A", Receiver: "B", Content: "hi", CreatedAt: now},
		{ID: "m2", Sender: "B", Receiver: "A", Content: "hey", CreatedAt: now.Add(time.Second)},
		{ID: "m3", Sender: "A", Receiver: "C", Content: "other", CreatedAt: now.Add(2 * time.Second)},
	}
	for _, m := range seed {
		if err := repo.Append(ctx, m); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	ab, err := repo.ListByPair(ctx, "A", "B")
	if err != nil {
		t.Fatalf("list A,B failed: %v", err)
	}
	ba, err := repo.ListByPair(ctx, "B", "A")
	if err != nil {
		t.Fatalf("list B,A failed: %v", err)
	}
	if len(ab) != 2 || len(ba) != 2 {
		t.Fatalf("expected 2 messages per direction, got %d and %d", len(ab), len(ba))
	}
	for i := range ab {
		if ab[i].ID != ba[i].ID {
			t.Fatalf("pair filter is not symmetric: %v vs %v", ab[i].ID, ba[i].ID)
		}
	}
	if ab[0].ID != "m1" || ab[1].ID != "m2" {
		t.Fatalf("append order not preserved: %v, %v", ab[0].ID, ab[1].ID)
	}
}

func TestFileMessageRepoConcurrentAppendsLoseNothing(t *testing.T) {
	repo := NewFileMessageRepository(filepath.Join(t.TempDir(), "posts.json"))
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Append(ctx, domain.Message{
				ID:        fmt.Sprintf("m%d", i),
				Sender:    "A",
				Receiver:  "B",
				Content:   "hi",
				CreatedAt: time.Now().UTC(),
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent append failed: %v", err)
		}
	}

	messages, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != writers {
		t.Fatalf("lost writes: expected %d messages, got %d", writers, len(messages))
	}
}

func TestFileMessageRepoRoundTripPreservesContent(t *testing.T) {
	repo := NewFileMessageRepository(filepath.Join(t.TempDir(), "posts.json"))
	ctx := context.Background()

	sent := domain.Message{
		ID:        "m1",
		Sender:    "A",
		Receiver:  "B",
		Content:   "hi",
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := repo.Append(ctx, sent); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	messages, err := repo.ListByPair(ctx, "A", "B")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected exactly one message, got %d", len(messages))
	}
	if !messages[0].CreatedAt.Equal(sent.CreatedAt) || messages[0].Content != sent.Content || messages[0].ID != sent.ID {
		t.Fatalf("round trip changed the record: %+v", messages[0])
	}
}
