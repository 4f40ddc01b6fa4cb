package db

import (
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestEnsureOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	if err := Init(path); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	defer func() {
		sqlDB, err := DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}()

	if err := EnsureOwner("owner", "secret"); err != nil {
		t.Fatalf("EnsureOwner returned error: %v", err)
	}

	var user User
	if err := DB.Where("username = ?", "owner").First(&user).Error; err != nil {
		t.Fatalf("expected owner to exist: %v", err)
	}
	if user.Password == "secret" {
		t.Fatal("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// 既存アカウントがあれば何もしない（パスワードも上書きしない）
	if err := EnsureOwner("owner", "different"); err != nil {
		t.Fatalf("second EnsureOwner returned error: %v", err)
	}
	var count int64
	DB.Model(&User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected single owner, got %d", count)
	}

	var reloaded User
	DB.Where("username = ?", "owner").First(&reloaded)
	if err := bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte("secret")); err != nil {
		t.Fatal("expected original password to survive")
	}
}

func TestEnsureOwnerSkipsBlankCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	if err := Init(path); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	defer func() {
		sqlDB, err := DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}()

	if err := EnsureOwner("", ""); err != nil {
		t.Fatalf("expected blank credentials to be a no-op, got %v", err)
	}

	var count int64
	DB.Model(&User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}
}
