package monitors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notorious-go/monitors"
)

func TestCaller(t *testing.T) {
	t.Parallel()

	a := monitors.NewCaller("a")
	b := monitors.NewCaller("a")
	assert.NotSame(t, a, b, "callers with the same name are distinct")
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "a", a.Name())
	assert.Equal(t, "a("+a.ID().String()+")", a.String())

	var none *monitors.Caller
	assert.Equal(t, "<nil>", none.String())

	assert.True(t, a.Alive())
	assert.True(t, monitors.CallerLiveness.Alive(a))
	a.Exit()
	a.Exit()
	assert.False(t, a.Alive())
	assert.False(t, monitors.CallerLiveness.Alive(a))
	<-a.Exited()
}

func TestNewCallers(t *testing.T) {
	t.Parallel()

	callers := monitors.NewCallers("worker", 3)
	names := make([]string, len(callers))
	for i, c := range callers {
		names[i] = c.Name()
	}
	assert.Equal(t, []string{"worker-0", "worker-1", "worker-2"}, names)
	assert.Empty(t, monitors.NewCallers("none", 0))
	assert.Empty(t, monitors.NewCallers("negative", -1))
}
