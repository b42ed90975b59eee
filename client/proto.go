package client

import (
	"fmt"
	"path/filepath"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
)

// ServiceName is the fully-qualified backend service in the proto contract.
const ServiceName = "library.LibraryService"

// Contract holds the method descriptors parsed from the proto definition.
// It is built once at startup and read-only afterwards.
type Contract struct {
	methods map[string]*desc.MethodDescriptor
}

// LoadContract parses the proto file at path and resolves every method in
// Methods against it. A contract that is missing any method is a startup
// error, not something to discover on the first request.
func LoadContract(path string) (*Contract, error) {
	parser := protoparse.Parser{
		ImportPaths: []string{filepath.Dir(path)},
	}
	fds, err := parser.ParseFiles(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse proto %s: %w", path, err)
	}

	var svc *desc.ServiceDescriptor
	for _, fd := range fds {
		if svc = fd.FindService(ServiceName); svc != nil {
			break
		}
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s not found in %s", ServiceName, path)
	}

	c := &Contract{methods: make(map[string]*desc.MethodDescriptor, len(Methods))}
	for _, name := range Methods {
		md := svc.FindMethodByName(name)
		if md == nil {
			return nil, fmt.Errorf("method %s.%s not found in %s", ServiceName, name, path)
		}
		c.methods[name] = md
	}
	return c, nil
}

// Method returns the descriptor for an RPC method name.
func (c *Contract) Method(name string) (*desc.MethodDescriptor, bool) {
	md, ok := c.methods[name]
	return md, ok
}
