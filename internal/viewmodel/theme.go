package viewmodel

import (
	"fmt"

	"nytviewer/internal/observable"
)

type ColorTheme string

const (
	ThemeSystem ColorTheme = "system"
	ThemeLight  ColorTheme = "light"
	ThemeDark   ColorTheme = "dark"
)

func ParseColorTheme(s string) (ColorTheme, error) {
	switch t := ColorTheme(s); t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown color theme %q", s)
	}
}

// ThemeProvider holds the app-wide color theme.
type ThemeProvider struct {
	theme *observable.Value[ColorTheme]
}

func NewThemeProvider(initial ColorTheme) *ThemeProvider {
	if initial == "" {
		initial = ThemeSystem
	}
	return &ThemeProvider{theme: observable.NewValue(initial)}
}

func (p *ThemeProvider) Theme() *observable.Value[ColorTheme] {
	return p.theme
}

func (p *ThemeProvider) Set(theme ColorTheme) {
	p.theme.Set(theme)
}
