package envutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReaders(t *testing.T) {
	t.Setenv("BS_STR", "  value ")
	t.Setenv("BS_BLANK", "   ")
	t.Setenv("BS_INT", "42")
	t.Setenv("BS_BAD_INT", "forty")
	t.Setenv("BS_BOOL", "off")
	t.Setenv("BS_SECS", "15")
	t.Setenv("BS_LIST", "a, ,b,")

	assert.Equal(t, "value", String("BS_STR", "def", nil))
	assert.Equal(t, "def", String("BS_BLANK", "def", nil))
	assert.Equal(t, "def", String("BS_MISSING", "def", nil))
	assert.Equal(t, 42, Int("BS_INT", 1, nil))
	assert.Equal(t, 1, Int("BS_BAD_INT", 1, nil))
	assert.False(t, Bool("BS_BOOL", true, nil))
	assert.True(t, Bool("BS_MISSING", true, nil))
	assert.Equal(t, 15*time.Second, Seconds("BS_SECS", time.Minute, nil))
	assert.Equal(t, time.Minute, Seconds("BS_MISSING", time.Minute, nil))
	assert.Equal(t, []string{"a", "b"}, List("BS_LIST", nil, nil))
}
