// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     server
// Description: nenc.v1.EncoderService descriptor, client and message mapping
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"fmt"

	"github.com/msto63/nestedencoder/foundation/nenc"
	mdwregistry "github.com/msto63/nestedencoder/foundation/nenc/registry"
	"github.com/msto63/nestedencoder/internal/encoder/service"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "nenc.v1.EncoderService"

const (
	encodeMethod  = "/" + ServiceName + "/Encode"
	optionsMethod = "/" + ServiceName + "/Options"
)

// Request fields. The catalog parameter name is accepted as an alias for
// the text field.
const (
	FieldText    = "text"
	FieldPattern = "pattern"
	FieldResult  = "result"
)

// EncoderServiceServer is the server API for nenc.v1.EncoderService
type EncoderServiceServer interface {
	Encode(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Options(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterEncoderServiceServer registers srv on s
func RegisterEncoderServiceServer(s grpc.ServiceRegistrar, srv EncoderServiceServer) {
	s.RegisterService(&EncoderServiceDesc, srv)
}

// EncoderServiceDesc describes nenc.v1.EncoderService
var EncoderServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EncoderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Encode", Handler: encodeHandler},
		{MethodName: "Options", Handler: optionsHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func encodeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EncoderServiceServer).Encode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: encodeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EncoderServiceServer).Encode(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func optionsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EncoderServiceServer).Options(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: optionsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EncoderServiceServer).Options(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Client is a typed client for nenc.v1.EncoderService
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an existing connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Encode sends text and a comma separated pattern
func (c *Client) Encode(ctx context.Context, text, pattern string, opts ...grpc.CallOption) (*nenc.Response, error) {
	return c.encode(ctx, map[string]interface{}{FieldText: text, FieldPattern: pattern}, opts...)
}

// EncodeTokens sends text and an already split pattern
func (c *Client) EncodeTokens(ctx context.Context, text string, tokens []string, opts ...grpc.CallOption) (*nenc.Response, error) {
	list := make([]interface{}, len(tokens))
	for i, t := range tokens {
		list[i] = t
	}
	return c.encode(ctx, map[string]interface{}{FieldText: text, FieldPattern: list}, opts...)
}

func (c *Client) encode(ctx context.Context, fields map[string]interface{}, opts ...grpc.CallOption) (*nenc.Response, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, encodeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return ResponseFromStruct(out)
}

// Options fetches the options catalog
func (c *Client) Options(ctx context.Context, opts ...grpc.CallOption) (*nenc.OptionsCatalog, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, optionsMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	resp, err := ResponseFromStruct(out)
	if err != nil {
		return nil, err
	}
	if !resp.IsOptions() {
		return nil, fmt.Errorf("options response without catalog")
	}
	return resp.Options, nil
}

// RequestFromStruct converts a wire request into a service request. The
// pattern may be a string or a list of strings.
func RequestFromStruct(in *structpb.Struct) (*service.Request, error) {
	req := &service.Request{}
	fields := in.GetFields()

	text, ok := fields[FieldText]
	if !ok {
		text = fields[mdwregistry.ParamText]
	}
	if text != nil {
		s, ok := text.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("field %q must be a string", FieldText)
		}
		req.Text = s.StringValue
	}

	switch p := fields[FieldPattern].GetKind().(type) {
	case nil:
	case *structpb.Value_StringValue:
		req.Pattern = p.StringValue
	case *structpb.Value_ListValue:
		req.Tokens = make([]string, 0, len(p.ListValue.GetValues()))
		for i, v := range p.ListValue.GetValues() {
			s, ok := v.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return nil, fmt.Errorf("pattern element %d must be a string", i)
			}
			req.Tokens = append(req.Tokens, s.StringValue)
		}
	case *structpb.Value_NullValue:
	default:
		return nil, fmt.Errorf("field %q must be a string or a list of strings", FieldPattern)
	}

	return req, nil
}

// ResponseToStruct converts an encoder response into a wire message
func ResponseToStruct(resp *nenc.Response) (*structpb.Struct, error) {
	if resp.IsOptions() {
		return CatalogToStruct(resp.Options)
	}
	return structpb.NewStruct(map[string]interface{}{FieldResult: resp.Result.Result})
}

// CatalogToStruct converts the options catalog into a wire message
func CatalogToStruct(catalog *nenc.OptionsCatalog) (*structpb.Struct, error) {
	params := make([]interface{}, len(catalog.Parameters))
	for i, p := range catalog.Parameters {
		params[i] = p
	}
	encodings := make(map[string]interface{}, len(catalog.Encodings))
	for k, v := range catalog.Encodings {
		encodings[k] = v
	}
	return structpb.NewStruct(map[string]interface{}{
		"parameters": params,
		"encodings":  encodings,
	})
}

// ResponseFromStruct converts a wire message back into an encoder response
func ResponseFromStruct(out *structpb.Struct) (*nenc.Response, error) {
	fields := out.GetFields()

	if v, ok := fields[FieldResult]; ok {
		return &nenc.Response{Result: &nenc.Result{Result: v.GetStringValue()}}, nil
	}

	enc, ok := fields["encodings"]
	if !ok {
		return nil, fmt.Errorf("response carries neither result nor catalog")
	}

	catalog := &nenc.OptionsCatalog{Encodings: make(map[string]string)}
	for _, p := range fields["parameters"].GetListValue().GetValues() {
		catalog.Parameters = append(catalog.Parameters, p.GetStringValue())
	}
	for k, v := range enc.GetStructValue().GetFields() {
		catalog.Encodings[k] = v.GetStringValue()
	}
	return &nenc.Response{Options: catalog}, nil
}
