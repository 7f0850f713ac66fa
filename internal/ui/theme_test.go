package ui

import "testing"

func TestSetTheme_UnknownFallsBackToDefault(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultTheme) })

	SetTheme("solarized")
	if CurrentThemeName() != DefaultTheme {
		t.Errorf("CurrentThemeName() = %q, want %q", CurrentThemeName(), DefaultTheme)
	}
}

func TestToggleTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultTheme) })

	SetTheme(ThemeLight)
	if got := ToggleTheme(); got != ThemeDark {
		t.Errorf("ToggleTheme() from light = %q, want dark", got)
	}
	if CurrentThemeName() != ThemeDark {
		t.Errorf("CurrentThemeName() = %q, want dark", CurrentThemeName())
	}
	if got := ToggleTheme(); got != ThemeLight {
		t.Errorf("ToggleTheme() from dark = %q, want light", got)
	}
}

func TestChromaStyle(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultTheme) })

	tests := []struct {
		theme ThemeName
		want  string
	}{
		{ThemeLight, "github"},
		{ThemeDark, "monokai"},
	}
	for _, tt := range tests {
		SetTheme(tt.theme)
		if got := ChromaStyle(); got != tt.want {
			t.Errorf("ChromaStyle() on %s = %q, want %q", tt.theme, got, tt.want)
		}
	}
}

func TestSetTheme_RegeneratesColors(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultTheme) })

	SetTheme(ThemeLight)
	light := ColorError
	SetTheme(ThemeDark)
	dark := ColorError

	lr, lg, lb, _ := light.RGBA()
	dr, dg, db, _ := dark.RGBA()
	if lr == dr && lg == dg && lb == db {
		t.Error("ColorError should change when switching themes")
	}
}

func TestThemeDefaults(t *testing.T) {
	dark := BuiltinThemes[ThemeDark]
	if dark.GetBgSelected() != dark.Primary {
		t.Errorf("GetBgSelected() = %q, want Primary %q", dark.GetBgSelected(), dark.Primary)
	}
	if dark.GetBorderFocus() != dark.Primary {
		t.Errorf("GetBorderFocus() = %q, want Primary %q", dark.GetBorderFocus(), dark.Primary)
	}
	light := BuiltinThemes[ThemeLight]
	if light.GetBgSelected() != "#E0E7FF" {
		t.Errorf("light GetBgSelected() = %q", light.GetBgSelected())
	}
}
