package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, ok, err := s.Get(ctx, KeyTheme); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}
	if got := s.GetOr(ctx, KeyTheme, "auto"); got != "auto" {
		t.Errorf("GetOr default = %q", got)
	}
	if err := s.Set(ctx, KeyTheme, "dark"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, KeyTheme, "light"); err != nil {
		t.Fatal(err)
	}
	if v, ok, err := s.Get(ctx, KeyTheme); err != nil || !ok || v != "light" {
		t.Errorf("Get = %q %v %v", v, ok, err)
	}
	if err := s.Set(ctx, KeyLanguage, "zh"); err != nil {
		t.Fatal(err)
	}
	all, err := s.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[KeyTheme] != "light" || all[KeyLanguage] != "zh" {
		t.Errorf("All = %v", all)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.sqlite")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, KeySection, "blog"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if got := s.GetOr(ctx, KeySection, "hero"); got != "blog" {
		t.Errorf("section after reopen = %q", got)
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	var got []string
	cancel := s.Subscribe(func(key, value string) { got = append(got, key+"="+value) })

	_ = s.Set(ctx, KeyTheme, "dark")
	_ = s.Set(ctx, KeyTheme, "dark") // unchanged, no notification
	_ = s.Set(ctx, KeyLanguage, "en")
	cancel()
	_ = s.Set(ctx, KeyTheme, "auto")

	want := []string{"theme=dark", "language=en"}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClosed(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if err := s.Set(ctx, KeyTheme, "dark"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after close = %v", err)
	}
	if _, _, err := s.Get(ctx, KeyTheme); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after close = %v", err)
	}
	if got := s.GetOr(ctx, KeyTheme, "auto"); got != "auto" {
		t.Errorf("GetOr after close = %q", got)
	}
}
