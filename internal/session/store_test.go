package session

import (
	"errors"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := testStore(t)

	v, err := s.Get("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "" {
		t.Errorf("value = %q, want empty", v)
	}
}

func TestSetAndGet(t *testing.T) {
	s := testStore(t)

	if err := s.Set(KeyAccessToken, "tok123"); err != nil {
		t.Fatalf("set: %v", err)
	}

	v, err := s.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if v != "tok123" {
		t.Errorf("token = %q, want tok123", v)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := testStore(t)

	if err := s.Set("k", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("k", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, err := s.Get("k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "two" {
		t.Errorf("value = %q, want two", v)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}

	v, err := s.Get("k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "" {
		t.Errorf("value = %q, want empty after delete", v)
	}
}

func TestSaveLoginAndProfile(t *testing.T) {
	s := testStore(t)

	p := Profile{ID: "u1", FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Role: "visitor"}
	if err := s.SaveLogin("tok123", p); err != nil {
		t.Fatalf("save login: %v", err)
	}

	tok, err := s.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if tok != "tok123" {
		t.Errorf("token = %q", tok)
	}

	loaded, err := s.Profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if loaded.ID != "u1" || loaded.Email != "jane@x.com" {
		t.Errorf("profile = %+v", loaded)
	}
}

func TestProfileMissing(t *testing.T) {
	s := testStore(t)

	_, err := s.Profile()
	if !errors.Is(err, ErrAuthMissing) {
		t.Fatalf("err = %v, want ErrAuthMissing", err)
	}
}

func TestClear(t *testing.T) {
	s := testStore(t)

	if err := s.SaveLogin("tok123", Profile{ID: "u1"}); err != nil {
		t.Fatalf("save login: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	tok, err := s.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if tok != "" {
		t.Errorf("token = %q, want empty after clear", tok)
	}
	if _, err := s.Profile(); !errors.Is(err, ErrAuthMissing) {
		t.Errorf("profile err = %v, want ErrAuthMissing", err)
	}
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(KeyAccessToken, "tok123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		if err := s2.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	tok, err := s2.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if tok != "tok123" {
		t.Errorf("token = %q, want tok123 after reopen", tok)
	}
}
