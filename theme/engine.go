package theme

import (
	"sort"
	"strings"
	"sync"
)

// Target selects which scope UpdateToken writes to.
type Target string

const (
	TargetRoot Target = "root"
	TargetDark Target = "dark"
)

// Overrides carries user token overrides per variant. Missing maps are
// treated as empty.
type Overrides struct {
	Light map[string]string `json:"light"`
	Dark  map[string]string `json:"dark"`
}

// Engine holds the applied token values and generates the live stylesheet:
// a :root block for the light set and a .dark block that wins only when the
// dark marker class is present on the document root. All state lives in
// structured maps; every mutation regenerates the block wholesale, so
// there is no text patching to get out of sync.
type Engine struct {
	mu   sync.Mutex
	root map[string]string
	dark map[string]string
}

func NewEngine() *Engine {
	return &Engine{
		root: map[string]string{},
		dark: map[string]string{},
	}
}

// Apply merges overrides over the base sets and replaces both scopes.
// Apply never fails; a nil engine is a no-op so callers can apply
// unconditionally even when no sink is wired.
func (e *Engine) Apply(light, dark map[string]string, ov Overrides) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.root = merge(light, ov.Light)
	e.dark = merge(dark, ov.Dark)
}

// UpdateToken rewrites a single token on the given scope without a full
// re-apply. Unknown token names are ignored.
func (e *Engine) UpdateToken(key, value string, target Target) {
	if e == nil || !ValidToken(key) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if target == TargetDark {
		e.dark[key] = value
		return
	}
	e.root[key] = value
}

// Token reads the applied value of a token on the given scope.
func (e *Engine) Token(key string, target Target) (string, bool) {
	if e == nil {
		return "", false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if target == TargetDark {
		v, ok := e.dark[key]
		return v, ok
	}
	v, ok := e.root[key]
	return v, ok
}

// CSS renders the current state as a stylesheet.
func (e *Engine) CSS() string {
	if e == nil {
		return ""
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	var b strings.Builder
	writeBlock(&b, ":root", e.root)
	b.WriteString("\n")
	writeBlock(&b, ".dark", e.dark)
	return b.String()
}

func writeBlock(b *strings.Builder, selector string, tokens map[string]string) {
	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, k := range keys {
		b.WriteString("  --")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(tokens[k])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
}

func merge(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		if ValidToken(k) {
			out[k] = v
		}
	}
	return out
}
