package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("[TurbulentGrid] n=%d", 8)
	assert.Equal(t, "[TurbulentGrid] n=8", got)

	got = ""
	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("dropped %s", "message") })
	assert.Empty(t, got)
}

func TestMute(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	calls := 0
	SetLogger(func(string, ...interface{}) { calls++ })

	restore := Mute()
	Logf("muted")
	assert.Equal(t, 0, calls)

	restore()
	Logf("restored")
	assert.Equal(t, 1, calls)
}

func TestLogf_Default(t *testing.T) {
	assert.NotNil(t, Logf)
	assert.NotPanics(t, func() { Logf("test message: %s", "value") })
}
