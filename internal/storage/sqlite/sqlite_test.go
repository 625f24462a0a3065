package sqlite

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.db")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := s.Put("2021年6月2日0時", "https://example.com/a.xlsx"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put("2021年6月2日0時", "https://example.com/b.xlsx"); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	if err := s.Put("2021年5月26日0時", "https://example.com/c.xlsx"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	v, ok, err := s.Get("2021年6月2日0時")
	if err != nil || !ok || v != "https://example.com/b.xlsx" {
		t.Errorf("Get() = %q, %v, %v", v, ok, err)
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	want := []string{"2021年5月26日0時", "2021年6月2日0時"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer reopened.Close()
	if _, ok, _ := reopened.Get("2021年5月26日0時"); !ok {
		t.Error("entry lost after reopen")
	}
}

func TestNew_EmptyPath(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") expected error")
	}
}
