package nilcheck_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notorious-go/monitors/internal/nilcheck"
)

func TestIsNil(t *testing.T) {
	t.Parallel()

	var (
		nilErr   error
		nilPtr   *int
		nilMap   map[string]int
		nilSlice []byte
		nilChan  chan int
		nilFunc  func()
		zero     int
	)

	assert.True(t, nilcheck.IsNil(nilErr))
	assert.True(t, nilcheck.IsNil(nilPtr))
	assert.True(t, nilcheck.IsNil(nilMap))
	assert.True(t, nilcheck.IsNil(nilSlice))
	assert.True(t, nilcheck.IsNil(nilChan))
	assert.True(t, nilcheck.IsNil(nilFunc))
	assert.True(t, nilcheck.IsNil[any](nil))
	assert.True(t, nilcheck.IsNil[any](nilPtr), "an interface holding a nil pointer")

	assert.False(t, nilcheck.IsNil(zero))
	assert.False(t, nilcheck.IsNil(""))
	assert.False(t, nilcheck.IsNil(struct{}{}))
	assert.False(t, nilcheck.IsNil(errors.New("x")))
	assert.False(t, nilcheck.IsNil(&zero))
	assert.False(t, nilcheck.IsNil([]byte{}))
	assert.False(t, nilcheck.IsNil[any](0))
}
