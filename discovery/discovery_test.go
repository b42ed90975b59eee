package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a local etcd; skipped when none is reachable.
func TestRegisterAndResolve(t *testing.T) {
	reg, err := New([]string{"localhost:2379"})
	if err != nil {
		t.Skipf("etcd not available: %v", err)
	}
	defer reg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	inst1 := Instance{Addr: "127.0.0.1:50051", Version: "1.0"}
	inst2 := Instance{Addr: "127.0.0.1:50052", Version: "1.0"}

	if err := reg.Register(ctx, "library-backend", inst1, 10); err != nil {
		t.Skipf("etcd not reachable: %v", err)
	}
	require.NoError(t, reg.Register(ctx, "library-backend", inst2, 10))

	instances, err := reg.Resolve(ctx, "library-backend")
	require.NoError(t, err)
	assert.Len(t, instances, 2)

	require.NoError(t, reg.Deregister(ctx, "library-backend", inst1.Addr))

	instances, err = reg.Resolve(ctx, "library-backend")
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, inst2.Addr, instances[0].Addr)

	_ = reg.Deregister(ctx, "library-backend", inst2.Addr)
}
