package persona

import (
	"context"
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
)

//go:embed testdata/*
var embedFS embed.FS

func TestService_Load(t *testing.T) {
	srv := New(afs.New(), "embed:///testdata", &embedFS)
	document, err := srv.Load(context.Background(), "personas")
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, 2, len(document.Agents))

	analyst := document.Lookup("analyst")
	if assert.NotNil(t, analyst) {
		assert.Equal(t, "Grumpy Code Reviewer", analyst.Role)
	}
	assert.Nil(t, document.Lookup("heckler"))

	task, ok := document.Task("roast")
	if assert.True(t, ok) {
		assert.Equal(t, "A short set", task.ExpectedOutput)
		assert.Contains(t, task.Description, "{username}")
	}
	_, ok = document.Task("sing")
	assert.False(t, ok)
}

func TestService_LoadMissing(t *testing.T) {
	srv := New(afs.New(), "embed:///testdata", &embedFS)
	_, err := srv.Load(context.Background(), "absent")
	assert.NotNil(t, err)
}

func TestService_LoadCaches(t *testing.T) {
	srv := New(afs.New(), "embed:///testdata", &embedFS)
	first, err := srv.Load(context.Background(), "personas.yaml")
	assert.Nil(t, err)
	second, err := srv.Load(context.Background(), "personas.yaml")
	assert.Nil(t, err)
	assert.Same(t, first, second)

	srv.Refresh("personas")
	third, err := srv.Load(context.Background(), "personas")
	assert.Nil(t, err)
	assert.NotSame(t, first, third)
}
