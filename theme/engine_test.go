package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyGeneratesBothScopes(t *testing.T) {
	e := NewEngine()
	e.Apply(DefaultLight(), DefaultDark(), Overrides{})

	css := e.CSS()
	assert.True(t, strings.HasPrefix(css, ":root {"))
	assert.Contains(t, css, ".dark {")
	assert.Contains(t, css, "--background: "+DefaultLight()[TokenBackground])
	assert.Contains(t, css, "--background: "+DefaultDark()[TokenBackground])
}

func TestOverrideWinsOverBase(t *testing.T) {
	e := NewEngine()
	e.Apply(DefaultLight(), DefaultDark(), Overrides{
		Light: map[string]string{TokenAccent: "tomato"},
		Dark:  map[string]string{TokenAccent: "crimson"},
	})

	v, _ := e.Token(TokenAccent, TargetRoot)
	assert.Equal(t, "tomato", v)
	v, _ = e.Token(TokenAccent, TargetDark)
	assert.Equal(t, "crimson", v)
}

func TestUnknownOverrideKeysIgnored(t *testing.T) {
	e := NewEngine()
	e.Apply(DefaultLight(), DefaultDark(), Overrides{
		Light: map[string]string{"notAToken": "red"},
	})
	assert.NotContains(t, e.CSS(), "notAToken")
}

func TestUpdateTokenRewritesSingleScope(t *testing.T) {
	e := NewEngine()
	e.Apply(DefaultLight(), DefaultDark(), Overrides{})

	e.UpdateToken(TokenPanel, "papayawhip", TargetRoot)
	v, _ := e.Token(TokenPanel, TargetRoot)
	assert.Equal(t, "papayawhip", v)
	v, _ = e.Token(TokenPanel, TargetDark)
	assert.Equal(t, DefaultDark()[TokenPanel], v)

	// Dark-scope update lands in the regenerated dark block.
	e.UpdateToken(TokenPanel, "midnightblue", TargetDark)
	css := e.CSS()
	darkBlock := css[strings.Index(css, ".dark"):]
	assert.Contains(t, darkBlock, "--panel: midnightblue;")
}

func TestUpdateTokenIgnoresUnknownNames(t *testing.T) {
	e := NewEngine()
	e.Apply(DefaultLight(), DefaultDark(), Overrides{})
	e.UpdateToken("bogus", "red", TargetRoot)
	assert.NotContains(t, e.CSS(), "bogus")
}

func TestNilEngineIsANoOp(t *testing.T) {
	var e *Engine
	e.Apply(DefaultLight(), DefaultDark(), Overrides{})
	e.UpdateToken(TokenAccent, "red", TargetRoot)
	assert.Equal(t, "", e.CSS())
}
