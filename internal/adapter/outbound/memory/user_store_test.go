package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/wallet-guard/walletguard/internal/domain/session"
	"github.com/wallet-guard/walletguard/internal/domain/user"
)

func TestUserStore_EmptyPrimaryUser(t *testing.T) {
	store := NewUserStore()

	u, err := store.PrimaryUser(context.Background())
	if err != nil {
		t.Fatalf("PrimaryUser(): %v", err)
	}
	if u != nil {
		t.Errorf("PrimaryUser() = %v, want nil for empty store", u)
	}
}

func TestUserStore_SaveAndLoad(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u := user.New(store.NextID(), "sha256:abc")
	if err := store.Save(ctx, u); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	got, err := store.PrimaryUser(ctx)
	if err != nil {
		t.Fatalf("PrimaryUser(): %v", err)
	}
	if got == nil || got.ID() != u.ID() {
		t.Fatalf("PrimaryUser() = %v, want user %v", got, u.ID())
	}
	if got.EncryptedPassword() != "sha256:abc" {
		t.Errorf("EncryptedPassword = %q, want %q", got.EncryptedPassword(), "sha256:abc")
	}
}

func TestUserStore_SecondUserRejected(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	if err := store.Save(ctx, user.New(store.NextID(), "first")); err != nil {
		t.Fatalf("Save() first: %v", err)
	}

	err := store.Save(ctx, user.New(store.NextID(), "second"))
	if !errors.Is(err, user.ErrPrimaryUserExists) {
		t.Errorf("Save() second user error = %v, want %v", err, user.ErrPrimaryUserExists)
	}
}

func TestUserStore_UpdateSameUser(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u := user.New(store.NextID(), "pw")
	if err := store.Save(ctx, u); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	sid := session.GenerateID()
	u.AttachSession(sid)
	if err := store.Save(ctx, u); err != nil {
		t.Fatalf("Save() update: %v", err)
	}

	got, _ := store.PrimaryUser(ctx)
	if got.SessionID() == nil || *got.SessionID() != sid {
		t.Error("updated session attachment was not persisted")
	}
}

func TestUserStore_Remove(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u := user.New(store.NextID(), "pw")
	if err := store.Remove(ctx, u); !errors.Is(err, user.ErrUserNotFound) {
		t.Errorf("Remove() on empty store error = %v, want %v", err, user.ErrUserNotFound)
	}

	_ = store.Save(ctx, u)
	if err := store.Remove(ctx, u); err != nil {
		t.Fatalf("Remove(): %v", err)
	}
	if got, _ := store.PrimaryUser(ctx); got != nil {
		t.Error("PrimaryUser() should be nil after Remove")
	}
}

func TestUserStore_UserByEncryptedPassword(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u := user.New(store.NextID(), "sha256:abc")
	_ = store.Save(ctx, u)

	got, err := store.UserByEncryptedPassword(ctx, "sha256:abc")
	if err != nil {
		t.Fatalf("UserByEncryptedPassword(): %v", err)
	}
	if got == nil || got.ID() != u.ID() {
		t.Errorf("UserByEncryptedPassword() = %v, want user %v", got, u.ID())
	}

	miss, err := store.UserByEncryptedPassword(ctx, "sha256:wrong")
	if err != nil {
		t.Fatalf("UserByEncryptedPassword() miss: %v", err)
	}
	if miss != nil {
		t.Errorf("UserByEncryptedPassword() wrong password = %v, want nil", miss)
	}
}

func TestUserStore_CopyIsolation(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u := user.New(store.NextID(), "pw")
	_ = store.Save(ctx, u)

	loaded, _ := store.PrimaryUser(ctx)
	loaded.AttachSession(session.GenerateID())

	again, _ := store.PrimaryUser(ctx)
	if again.SessionID() != nil {
		t.Error("mutating a loaded copy must not change the store")
	}
}
