// internal/store/file_store_test.go
package store_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"qshield/internal/domain"
	"qshield/internal/state"
	"qshield/internal/store"
)

// exerciseKV runs the behaviour every backend must share.
func exerciseKV(t *testing.T, kv domain.KeyValueStore) {
	t.Helper()

	if _, ok, err := kv.Get("ledgerEntries"); err != nil || ok {
		t.Fatalf("get missing key: ok=%v err=%v", ok, err)
	}

	want := []byte(`[{"org":"Company A"}]`)
	if err := kv.Set("ledgerEntries", want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := kv.Get("ledgerEntries")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	if err := kv.Set("ledgerEntries", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = kv.Get("ledgerEntries")
	if string(got) != `[]` {
		t.Fatalf("overwrite not visible: %q", got)
	}

	if err := kv.Delete("ledgerEntries"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get("ledgerEntries"); ok {
		t.Fatal("key still present after delete")
	}
	if err := kv.Delete("ledgerEntries"); err != nil {
		t.Fatalf("delete missing key: %v", err)
	}
}

func TestFileStore_Roundtrip(t *testing.T) {
	exerciseKV(t, store.NewFileStore(t.TempDir()))
}

func TestFileStore_OneFilePerKey(t *testing.T) {
	home := t.TempDir()
	fs := store.NewFileStore(home)
	if err := fs.Set("currentUser", []byte(`{"id":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	info, err := os.Stat(filepath.Join(home, "currentUser.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(home)
	if len(entries) != 1 {
		t.Fatalf("expected no temp files left behind, got %d entries", len(entries))
	}
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	fs := store.NewFileStore(t.TempDir())
	for _, key := range []string{"", "../escape", "a/b", `a\b`} {
		if err := fs.Set(key, []byte("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestMemoryStore_Roundtrip(t *testing.T) {
	exerciseKV(t, store.NewMemoryStore())
}

func TestSQLiteStore_Roundtrip(t *testing.T) {
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "qshield.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	exerciseKV(t, db)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qshield.db")
	db, err := store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Set("certificate", []byte(`{"orgName":"Company C"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = db.Close()

	db, err = store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got, ok, err := db.Get("certificate")
	if err != nil || !ok || string(got) != `{"orgName":"Company C"}` {
		t.Fatalf("after reopen: %q ok=%v err=%v", got, ok, err)
	}
}

func TestSealedStore_Roundtrip(t *testing.T) {
	sealedKV, err := store.NewSealedStore(store.NewMemoryStore(), "correct horse")
	if err != nil {
		t.Fatalf("new sealed store: %v", err)
	}
	exerciseKV(t, sealedKV)
}

func TestSealedStore_CiphertextAtRest(t *testing.T) {
	home := t.TempDir()
	inner := store.NewFileStore(home)
	s, err := store.NewSealedStore(inner, "pass")
	if err != nil {
		t.Fatalf("new sealed store: %v", err)
	}
	if err := s.Set("currentUser", []byte(`{"email":"soc@company-a.io"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, _, _ := inner.Get("currentUser")
	if bytes.Contains(raw, []byte("soc@company-a.io")) {
		t.Fatal("plaintext visible on disk")
	}

	// Same passphrase, fresh wrapper: params are reloaded from disk.
	again, err := store.NewSealedStore(inner, "pass")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok, err := again.Get("currentUser")
	if err != nil || !ok || string(got) != `{"email":"soc@company-a.io"}` {
		t.Fatalf("reopen get: %q ok=%v err=%v", got, ok, err)
	}
}

func TestSealedStore_WrongPassphrase_Fails(t *testing.T) {
	inner := store.NewMemoryStore()
	s, _ := store.NewSealedStore(inner, "correct")
	if err := s.Set("certificate", []byte(`{}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	wrong, err := store.NewSealedStore(inner, "wrong")
	if err != nil {
		t.Fatalf("new sealed store: %v", err)
	}
	if _, _, err := wrong.Get("certificate"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
}

func TestSealedStore_ValuesBoundToKey(t *testing.T) {
	inner := store.NewMemoryStore()
	s, _ := store.NewSealedStore(inner, "pass")
	if err := s.Set("certificate", []byte(`{}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, _, _ := inner.Get("certificate")
	_ = inner.Set("currentUser", raw)

	if _, _, err := s.Get("currentUser"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected swapped value to be rejected, got %v", err)
	}
}

func TestSealedStore_RejectsUnsealedValues(t *testing.T) {
	home := t.TempDir()
	plain := store.NewFileStore(home)
	if err := plain.Set("currentUser", []byte(`{"id":1,"email":"a@b","org":"X"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	s, err := store.NewSealedStore(plain, "pw")
	if err != nil {
		t.Fatalf("new sealed store: %v", err)
	}
	if _, _, err := s.Get("currentUser"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase for plaintext, got %v", err)
	}

	// A sealed value whose nonce was truncated.
	_ = plain.Set("certificate", []byte(`{"v":1,"nonce":"AAEC","cipher":"AAEC"}`))
	if _, _, err := s.Get("certificate"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase for short nonce, got %v", err)
	}

	// Hydrating over previously unsealed state fails instead of crashing.
	if _, err := state.Open(s); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
