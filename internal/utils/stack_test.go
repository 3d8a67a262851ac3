package utils_test

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandhuwib/go-blog-api/internal/utils"
)

func TestParseStack(t *testing.T) {
	frames := utils.ParseStack(debug.Stack())
	require.NotEmpty(t, frames)

	for _, f := range frames {
		assert.NotEmpty(t, f.MethodName)
		assert.NotEmpty(t, f.File)
		assert.Greater(t, f.LineNumber, 0)
	}
}

func TestParseStackEmpty(t *testing.T) {
	assert.Empty(t, utils.ParseStack(nil))
}
