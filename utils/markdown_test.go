package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertMarkdownToSlack(t *testing.T) {
	t.Run("ConvertsLinks", func(t *testing.T) {
		result := ConvertMarkdownToSlack("see [the docs](https://example.com/docs) for details")
		assert.Equal(t, "see <https://example.com/docs|the docs> for details", result)
	})

	t.Run("ConvertsBold", func(t *testing.T) {
		result := ConvertMarkdownToSlack("this is **important** and **urgent**")
		assert.Equal(t, "this is *important* and *urgent*", result)
	})

	t.Run("ConvertsHeadings", func(t *testing.T) {
		result := ConvertMarkdownToSlack("## Summary\nAll good.")
		assert.Equal(t, "*Summary*\nAll good.", result)
	})

	t.Run("StripsBoldInsideHeadings", func(t *testing.T) {
		result := ConvertMarkdownToSlack("# The **Big** Picture")
		assert.Equal(t, "*The Big Picture*", result)
	})

	t.Run("LeavesPlainTextAlone", func(t *testing.T) {
		result := ConvertMarkdownToSlack("just a plain sentence")
		assert.Equal(t, "just a plain sentence", result)
	})
}
