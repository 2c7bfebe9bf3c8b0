package theme

// Semantic design tokens. The renderer only ever references these names;
// concrete values come from the active variant plus user overrides.
const (
	TokenBackground  = "background"
	TokenPanel       = "panel"
	TokenText        = "text"
	TokenMuted       = "muted"
	TokenAccent      = "accent"
	TokenAccentHover = "accentHover"
	TokenSuccess     = "success"
	TokenWarning     = "warning"
	TokenDanger      = "danger"
	TokenBorder      = "border"
	TokenInputBg     = "inputBg"
	TokenPlaceholder = "placeholder"
	TokenIcon        = "icon"
	TokenGradient    = "gradient"
	TokenButtonText  = "buttonText"
	TokenHeaderBg    = "headerBg"
	TokenFontPrimary = "fontPrimary"
)

// TokenNames is the closed set of valid token names.
var TokenNames = []string{
	TokenBackground, TokenPanel, TokenText, TokenMuted,
	TokenAccent, TokenAccentHover,
	TokenSuccess, TokenWarning, TokenDanger,
	TokenBorder, TokenInputBg, TokenPlaceholder, TokenIcon,
	TokenGradient, TokenButtonText, TokenHeaderBg, TokenFontPrimary,
}

var tokenSet = func() map[string]bool {
	m := make(map[string]bool, len(TokenNames))
	for _, n := range TokenNames {
		m[n] = true
	}
	return m
}()

// ValidToken reports whether name is a known semantic token.
func ValidToken(name string) bool {
	return tokenSet[name]
}

// DefaultLight is the base light variant.
func DefaultLight() map[string]string {
	return map[string]string{
		TokenBackground:  "#f4f6fb",
		TokenPanel:       "#ffffff",
		TokenText:        "#1f2937",
		TokenMuted:       "#6b7280",
		TokenAccent:      "#2563eb",
		TokenAccentHover: "#1d4ed8",
		TokenSuccess:     "#16a34a",
		TokenWarning:     "#d97706",
		TokenDanger:      "#dc2626",
		TokenBorder:      "#e5e7eb",
		TokenInputBg:     "#ffffff",
		TokenPlaceholder: "#9ca3af",
		TokenIcon:        "#4b5563",
		TokenGradient:    "linear-gradient(135deg, #2563eb, #7c3aed)",
		TokenButtonText:  "#ffffff",
		TokenHeaderBg:    "#ffffff",
		TokenFontPrimary: "'Inter', sans-serif",
	}
}

// DefaultDark is the base dark variant.
func DefaultDark() map[string]string {
	return map[string]string{
		TokenBackground:  "#0b1120",
		TokenPanel:       "#111827",
		TokenText:        "#e5e7eb",
		TokenMuted:       "#9ca3af",
		TokenAccent:      "#3b82f6",
		TokenAccentHover: "#60a5fa",
		TokenSuccess:     "#22c55e",
		TokenWarning:     "#f59e0b",
		TokenDanger:      "#ef4444",
		TokenBorder:      "#1f2937",
		TokenInputBg:     "#0f172a",
		TokenPlaceholder: "#6b7280",
		TokenIcon:        "#9ca3af",
		TokenGradient:    "linear-gradient(135deg, #1e3a8a, #5b21b6)",
		TokenButtonText:  "#f9fafb",
		TokenHeaderBg:    "#0f172a",
		TokenFontPrimary: "'Inter', sans-serif",
	}
}
