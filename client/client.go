// Package client is the gateway's invocation adapter: one backend RPC per
// inbound request, issued over a shared long-lived connection.
//
// The backend contract is loaded from a .proto file at startup and invoked
// dynamically, so payloads pass through as JSON with no generated stubs in
// between. Every fault a call can produce — transport, backend status,
// payload shaping — resolves to a classified *apierr.Error; nothing escapes
// this package unclassified.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang/protobuf/jsonpb"
	"github.com/jhump/protoreflect/dynamic"
	"github.com/jhump/protoreflect/dynamic/grpcdynamic"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"library-gateway/apierr"
	"library-gateway/requestid"
)

// metadataRequestID is the outgoing metadata key carrying the correlation
// identifier, matched by the backend's interceptor.
const metadataRequestID = "x-request-id"

var fastjson = jsoniter.ConfigCompatibleWithStandardLibrary

// Invoker is the call surface the dispatch table depends on. Tests substitute
// a stub; production uses *Client.
type Invoker interface {
	Invoke(ctx context.Context, method string, payload map[string]any) (json.RawMessage, error)
}

// Client invokes backend RPCs over a single shared connection. The connection
// is opened once at startup and multiplexes concurrent calls; the client holds
// no other mutable state after Dial.
type Client struct {
	conn     *grpc.ClientConn
	stub     grpcdynamic.Stub
	contract *Contract
	log      zerolog.Logger

	unmarshaler jsonpb.Unmarshaler
	marshaler   jsonpb.Marshaler
}

// Dial connects to the backend target and returns a ready client.
// grpc.NewClient connects lazily, so a backend that is down at startup
// surfaces as Unavailable on the first call rather than here.
func Dial(target string, contract *Contract, log zerolog.Logger) (*Client, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial backend %s: %w", target, err)
	}
	return &Client{
		conn:     conn,
		stub:     grpcdynamic.NewStub(conn),
		contract: contract,
		log:      log,
		// Unknown fields are tolerated so the gateway never breaks when the
		// backend contract grows ahead of a route's payload shape.
		unmarshaler: jsonpb.Unmarshaler{AllowUnknownFields: true},
		// OrigName keeps snake_case field names; EmitDefaults keeps zero
		// values (empty lists, zero counts) visible to the UI.
		marshaler: jsonpb.Marshaler{OrigName: true, EmitDefaults: true},
	}, nil
}

// Close releases the backend connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Invoke issues one backend call, at most once, with no retry and no
// gateway-imposed timeout. The correlation identifier from ctx travels as
// out-of-band call metadata. On success the backend response is returned as
// JSON, verbatim; on failure the error is always a classified *apierr.Error.
func (c *Client) Invoke(ctx context.Context, method string, payload map[string]any) (json.RawMessage, error) {
	md, ok := c.contract.Method(method)
	if !ok {
		// A route bound to a method outside the contract is a dispatch bug.
		return nil, apierr.New(apierr.Internal, "")
	}

	body, err := fastjson.Marshal(payload)
	if err != nil {
		return nil, apierr.New(apierr.Internal, "")
	}
	req := dynamic.NewMessage(md.GetInputType())
	if err := req.UnmarshalJSONPB(&c.unmarshaler, body); err != nil {
		c.log.Error().Err(err).Str("method", method).Msg("payload does not fit request message")
		return nil, apierr.New(apierr.Internal, "")
	}

	if id := requestid.FromContext(ctx); id != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, metadataRequestID, id)
	}

	var trailer metadata.MD
	resp, err := c.stub.InvokeRpc(ctx, md, req, grpc.Trailer(&trailer))
	if err != nil {
		fail := Classify(err, trailer)
		c.log.Warn().
			Str("method", method).
			Str("category", string(fail.Category)).
			Str("machine_code", fail.MachineCode).
			Str("request_id", requestid.FromContext(ctx)).
			Msg(fail.Message)
		return nil, fail
	}

	dyn, ok := resp.(*dynamic.Message)
	if !ok {
		return nil, apierr.New(apierr.Internal, "")
	}
	out, err := dyn.MarshalJSONPB(&c.marshaler)
	if err != nil {
		return nil, apierr.New(apierr.Internal, "")
	}
	return out, nil
}
