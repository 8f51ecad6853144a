package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	assert.Contains(t, NewMethodNotFoundError("lookupProfile").Error(), `"lookupProfile"`)
	assert.Contains(t, NewInvalidInputError("text").Error(), "string")
	assert.Contains(t, NewInvalidOutputError(42).Error(), "int")
}
