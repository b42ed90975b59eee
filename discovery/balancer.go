package discovery

import (
	"fmt"
	"sync/atomic"
)

// RoundRobin picks instances in order with an atomic counter, so it is safe
// without locks. The gateway uses it once at startup to choose which resolved
// backend to dial; repeated resolutions distribute across instances.
type RoundRobin struct {
	counter int64
}

// Pick selects the next instance in round-robin order.
func (b *RoundRobin) Pick(instances []Instance) (*Instance, error) {
	if len(instances) == 0 {
		return nil, fmt.Errorf("no backend instances available")
	}
	index := atomic.AddInt64(&b.counter, 1) % int64(len(instances))
	return &instances[index], nil
}
