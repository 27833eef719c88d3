package gcal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitz/dayslot/internal/models"
)

type fakeAccounts struct {
	account *models.Account
	err     error
}

func (f *fakeAccounts) GetByUser(ctx context.Context, userID string) (*models.Account, error) {
	return f.account, f.err
}

func TestSessionAuthFailures(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name    string
		account *models.Account
	}{
		{
			name:    "no linked account",
			account: nil,
		},
		{
			name:    "wrong provider",
			account: &models.Account{UserID: "u1", ProviderID: "github", AccessToken: "tok"},
		},
		{
			name:    "missing access token",
			account: &models.Account{UserID: "u1", ProviderID: "google"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeAccounts{account: tt.account}, loc)
			_, err := svc.Session(context.Background(), "u1")
			if err == nil {
				t.Fatal("Session() expected error, got nil")
			}
			if !errors.Is(err, ErrNotAuthenticated) {
				t.Errorf("Session() error = %v, want ErrNotAuthenticated", err)
			}
		})
	}
}

func TestSessionStoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewService(&fakeAccounts{err: storeErr}, time.UTC)

	_, err := svc.Session(context.Background(), "u1")
	if err == nil {
		t.Fatal("Session() expected error, got nil")
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("Session() error = %v, want wrapped store error", err)
	}
	if errors.Is(err, ErrNotAuthenticated) {
		t.Error("store failures must not be classified as authentication failures")
	}
}

func TestSessionSuccess(t *testing.T) {
	account := &models.Account{
		UserID:      "u1",
		ProviderID:  "google",
		AccessToken: "tok",
	}
	svc := NewService(&fakeAccounts{account: account}, time.UTC)

	session, err := svc.Session(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if session == nil {
		t.Fatal("Session() returned nil session")
	}
}
