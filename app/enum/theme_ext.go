package enum

// Toggle returns the opposite theme (dark↔light). System defaults to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether the theme is an explicit dark preference.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// IsSet reports whether the theme is an explicit preference rather than the system default.
func (t Theme) IsSet() bool {
	return t == ThemeDark || t == ThemeLight
}

// ThemeFromDark maps the dark flag to an explicit theme.
func ThemeFromDark(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}
