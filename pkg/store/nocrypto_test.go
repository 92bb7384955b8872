//go:build nocrypto

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tableflip.dev/jrnl/pkg/crypt"
)

func TestLoadEncryptedUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.txt")
	o := testOptions(path)
	o.Encrypt = true
	asked := false
	o.Password = func() (string, error) { asked = true; return "pw", nil }
	var notices []string
	o.Notify = func(msg string) { notices = append(notices, msg) }

	if _, err := Load(context.Background(), o); !errors.Is(err, crypt.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("journal file should not be created, stat err %v", err)
	}
	if asked || len(notices) != 0 {
		t.Fatalf("expected no prompt and no notices, got asked=%v notices=%v", asked, notices)
	}
}
