package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueIDs([]string{"a", "a", "b"}))
	assert.Equal(t, []string{"b", "a"}, uniqueIDs([]string{"b", "a", "b", "a"}))
	assert.Equal(t, []string{"a"}, uniqueIDs([]string{"a"}))
	assert.Empty(t, uniqueIDs(nil))
}
