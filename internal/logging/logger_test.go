package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_BeforeInitializeIsSilent(t *testing.T) {
	l := Get(CategorySession)
	require.NotNil(t, l)

	// Must not panic even though Initialize was never called.
	l.Debug("debug %s", "msg")
	l.Error("error %d", 42)
}

func TestGet_SameCategoryReturnsSameLogger(t *testing.T) {
	a := Get(CategoryAPI)
	b := Get(CategoryAPI)
	assert.Same(t, a, b)
}

func TestInitialize_ResetsLoggers(t *testing.T) {
	before := Get(CategoryChat)
	require.NoError(t, Initialize(true))
	after := Get(CategoryChat)
	assert.NotSame(t, before, after)

	after.Info("initialized %v", true)
}
