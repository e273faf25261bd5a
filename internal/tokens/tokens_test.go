package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Count(t *testing.T) {
	c := NewCounter()

	assert.Zero(t, c.Count(""))

	short := c.Count("hello world")
	assert.Equal(t, 2, short)

	long := c.Count(strings.Repeat("You are an expert assistant. ", 20))
	assert.Greater(t, long, short)
}

func TestEstimate(t *testing.T) {
	assert.Equal(t, 0, Estimate(""))
	assert.Equal(t, 1, Estimate("abc"))
	assert.Equal(t, 1, Estimate("abcd"))
	assert.Equal(t, 2, Estimate("abcde"))
}
