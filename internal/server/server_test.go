package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListenAddr(t *testing.T) {
	assert.Equal(t, ":8080", listenAddr("8080"))
	assert.Equal(t, ":8080", listenAddr(":8080"))
	assert.Equal(t, ":", listenAddr(""))
}
