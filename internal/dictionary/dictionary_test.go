package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityPassesThrough(t *testing.T) {
	d := Identity()
	assert.Equal(t, "CDP_NUM", d.ToLocal("CDP_NUM"))
	assert.Equal(t, "CDP_NUM", d.ToForeign("CDP_NUM"))
}

func TestMapTranslatesBothDirections(t *testing.T) {
	d := NewMap(map[string]string{"CDP_NUM": "CDP"})
	assert.Equal(t, "CDP", d.ToForeign("CDP_NUM"))
	assert.Equal(t, "CDP_NUM", d.ToLocal("CDP"))
}

func TestMapPassesThroughUnknownLabels(t *testing.T) {
	d := NewMap(map[string]string{"CDP_NUM": "CDP"})
	assert.Equal(t, "OFFSET", d.ToForeign("OFFSET"))
	assert.Equal(t, "OFFSET", d.ToLocal("OFFSET"))
}
