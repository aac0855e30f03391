package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("ideas/20250101T000000Z.json"))
	assert.Equal(t, "text/html", contentType("report.html"))
	assert.Equal(t, "application/octet-stream", contentType("blob"))
}
