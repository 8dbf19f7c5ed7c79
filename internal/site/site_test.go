package site

import (
	"errors"
	"testing"
	"time"
)

func TestThemeCycle(t *testing.T) {
	th := ThemeLight
	var seen []Theme
	for i := 0; i < 4; i++ {
		seen = append(seen, th)
		th = th.Next()
	}
	want := []Theme{ThemeLight, ThemeDark, ThemeAuto, ThemeLight}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
}

func TestThemeEffective(t *testing.T) {
	tests := []struct {
		theme      Theme
		systemDark bool
		want       Theme
	}{
		{ThemeLight, true, ThemeLight},
		{ThemeDark, false, ThemeDark},
		{ThemeAuto, true, ThemeDark},
		{ThemeAuto, false, ThemeLight},
	}
	for _, tt := range tests {
		if got := tt.theme.Effective(tt.systemDark); got != tt.want {
			t.Errorf("%s.Effective(%v) = %s, want %s", tt.theme, tt.systemDark, got, tt.want)
		}
	}
	if Palette(ThemeDark) == Palette(ThemeLight) {
		t.Error("dark and light palettes are identical")
	}
}

func TestParse(t *testing.T) {
	if th, err := ParseTheme("dark"); err != nil || th != ThemeDark {
		t.Errorf("ParseTheme(dark) = %v, %v", th, err)
	}
	if _, err := ParseTheme("sepia"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("ParseTheme(sepia) err = %v", err)
	}
	if l, err := ParseLang("zh"); err != nil || l != LangZH {
		t.Errorf("ParseLang(zh) = %v, %v", l, err)
	}
	if _, err := ParseLang("fr"); !errors.Is(err, ErrUnknownLang) {
		t.Errorf("ParseLang(fr) err = %v", err)
	}
	if LangEN.Next() != LangZH || LangZH.Next() != LangEN {
		t.Error("language toggle broken")
	}
}

func TestTranslateFallback(t *testing.T) {
	if got := T(LangZH, "nav.blog"); got != "博客" {
		t.Errorf("zh nav.blog = %q", got)
	}
	if got := T(LangZH, "status.help"); got != T(LangEN, "status.help") {
		t.Errorf("zh status.help did not fall back: %q", got)
	}
	if got := T(LangEN, "no.such.key"); got != "no.such.key" {
		t.Errorf("missing key = %q", got)
	}
}

func TestSystemDark(t *testing.T) {
	day := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	night := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	early := time.Date(2024, 5, 1, 6, 59, 0, 0, time.UTC)
	if SystemDark(day) || !SystemDark(night) || !SystemDark(early) {
		t.Error("SystemDark boundaries wrong")
	}
}
