package secret

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResource_IsEmpty(t *testing.T) {
	var resource *Resource
	assert.True(t, resource.IsEmpty())
	assert.True(t, (&Resource{}).IsEmpty())
	assert.False(t, (&Resource{Value: "token"}).IsEmpty())
	assert.False(t, (&Resource{SourceURL: "file:///tmp/cred.json"}).IsEmpty())
}

func TestService_ResolveLiteral(t *testing.T) {
	srv := New()
	value, err := srv.Resolve(context.Background(), &Resource{Value: "ghp_example"})
	assert.Nil(t, err)
	assert.Equal(t, "ghp_example", value)
}

func TestService_ResolveEmpty(t *testing.T) {
	srv := New()
	value, err := srv.Resolve(context.Background(), &Resource{})
	assert.Nil(t, err)
	assert.Equal(t, "", value)
}

func TestService_ResolveInvalidTarget(t *testing.T) {
	srv := New()
	_, err := srv.Resolve(context.Background(), &Resource{SourceURL: "file:///tmp/cred.json", Target: "no-such-type"})
	assert.NotNil(t, err)
}
