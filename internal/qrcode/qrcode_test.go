package qrcode_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secrethitler/internal/qrcode"
)

func TestGenerate(t *testing.T) {
	png, err := qrcode.Generate(qrcode.JoinURL("localhost:8080", "abc"), 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://host:1/?player=s1", qrcode.JoinURL("host:1", "s1"))
}
