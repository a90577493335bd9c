package web

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/identity"
)

// ThemeConfig locates an on-disk go-theme bundle and names the selection
// applied to rendered pages. An empty Dir disables theming; pages then fall
// back to the stylesheet built into the templates.
type ThemeConfig struct {
	// Dir is the directory holding the theme manifest.
	Dir string
	// Name overrides the manifest name when the manifest does not carry one.
	Name string
	// Variant selects a manifest variant, for example "dark".
	Variant string
	// CSSVariablePrefix namespaces the emitted CSS custom properties.
	CSSVariablePrefix string
}

// ThemeContext carries the selected theme data templates consume. ID is
// derived from the manifest location, so reinstalling the same theme keeps
// the same identifier.
type ThemeContext struct {
	ID      uuid.UUID
	Name    string
	Variant string
	Tokens  map[string]string
	CSSVars map[string]string
}

type themeManifestLoader interface {
	Load(path string) (*gotheme.Manifest, error)
}

type fsThemeManifestLoader struct{}

func (fsThemeManifestLoader) Load(path string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(path))
	if cleaned == "" {
		return nil, fmt.Errorf("web: theme dir required")
	}
	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

func emptyThemeContext() ThemeContext {
	return ThemeContext{
		Tokens:  map[string]string{},
		CSSVars: map[string]string{},
	}
}

// LoadThemeContext loads, registers, and selects the configured theme. An
// empty Dir yields an empty context and no error.
func LoadThemeContext(cfg ThemeConfig) (ThemeContext, error) {
	return loadThemeContext(cfg, fsThemeManifestLoader{})
}

func loadThemeContext(cfg ThemeConfig, loader themeManifestLoader) (ThemeContext, error) {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		return emptyThemeContext(), nil
	}
	if loader == nil {
		loader = fsThemeManifestLoader{}
	}

	manifest, err := loader.Load(dir)
	if err != nil {
		return emptyThemeContext(), fmt.Errorf("web: load theme manifest from %s: %w", dir, err)
	}

	normalized := *manifest
	if strings.TrimSpace(normalized.Name) == "" {
		normalized.Name = strings.TrimSpace(cfg.Name)
	}
	if normalized.Name == "" {
		return emptyThemeContext(), fmt.Errorf("web: theme name required for registration")
	}

	registry := gotheme.NewRegistry()
	if err := registry.Register(&normalized); err != nil {
		return emptyThemeContext(), fmt.Errorf("web: register theme manifest: %w", err)
	}

	variant := strings.TrimSpace(cfg.Variant)
	selector := gotheme.Selector{
		Registry:       registry,
		DefaultTheme:   normalized.Name,
		DefaultVariant: variant,
	}
	selection, err := selector.Select(normalized.Name, variant)
	if err != nil {
		return emptyThemeContext(), fmt.Errorf("web: select theme %s: %w", normalized.Name, err)
	}

	return ThemeContext{
		ID:      identity.ThemeUUID(dir),
		Name:    selection.Theme,
		Variant: selection.Variant,
		Tokens:  copyTokens(selection.Tokens()),
		CSSVars: copyTokens(selection.CSSVariables(cfg.CSSVariablePrefix)),
	}, nil
}

// copyTokens detaches selection data from the registry so later template use
// cannot observe mutation. Always non-nil, matching emptyThemeContext.
func copyTokens(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

// StyleVars renders the selection's CSS custom properties as a :root block
// ready for an inline <style> element. Keys are emitted in sorted order so
// rendered pages stay byte-stable across runs.
func (t ThemeContext) StyleVars() template.CSS {
	if len(t.CSSVars) == 0 {
		return ""
	}

	props := make(map[string]string, len(t.CSSVars))
	names := make([]string, 0, len(t.CSSVars))
	for key, value := range t.CSSVars {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		props[name] = value
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root{")
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(":")
		b.WriteString(props[name])
		b.WriteString(";")
	}
	b.WriteString("}")
	return template.CSS(b.String())
}
