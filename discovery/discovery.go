// Package discovery resolves the backend service target from etcd.
//
// Backends register themselves under /library-gateway/<service>/<addr> with a
// TTL lease, so a crashed backend disappears when its lease expires instead of
// lingering as a ghost entry. The gateway resolves the prefix once at startup
// and dials a single long-lived connection; it does not re-balance per call.
// When etcd is not configured the gateway uses the static backend address and
// this package is not involved.
package discovery

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/library-gateway/"

var fastjson = jsoniter.ConfigCompatibleWithStandardLibrary

// Instance describes one registered backend.
type Instance struct {
	Addr    string
	Version string
}

// Registry is an etcd-backed view of registered backend instances.
type Registry struct {
	cli *clientv3.Client
}

// New connects to the given etcd endpoints.
func New(endpoints []string) (*Registry, error) {
	cli, err := clientv3.New(clientv3.Config{Endpoints: endpoints})
	if err != nil {
		return nil, fmt.Errorf("connect etcd: %w", err)
	}
	return &Registry{cli: cli}, nil
}

// Close releases the etcd connection.
func (r *Registry) Close() error {
	return r.cli.Close()
}

// Register adds an instance under the service prefix with a TTL lease and
// keeps the lease alive in the background. Backends call this on startup.
func (r *Registry) Register(ctx context.Context, service string, inst Instance, ttl int64) error {
	lease, err := r.cli.Grant(ctx, ttl)
	if err != nil {
		return err
	}

	val, err := fastjson.Marshal(inst)
	if err != nil {
		return err
	}

	_, err = r.cli.Put(ctx, keyPrefix+service+"/"+inst.Addr, string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	ch, err := r.cli.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}
	// Drain keepalive acks so the channel never fills up.
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes an instance, typically during graceful shutdown.
func (r *Registry) Deregister(ctx context.Context, service, addr string) error {
	_, err := r.cli.Delete(ctx, keyPrefix+service+"/"+addr)
	return err
}

// Resolve returns all currently registered instances for a service.
func (r *Registry) Resolve(ctx context.Context, service string) ([]Instance, error) {
	resp, err := r.cli.Get(ctx, keyPrefix+service+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	instances := make([]Instance, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var inst Instance
		if err := fastjson.Unmarshal(kv.Value, &inst); err != nil {
			continue // skip malformed entries
		}
		instances = append(instances, inst)
	}
	return instances, nil
}
