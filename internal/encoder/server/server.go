// ============================================================================
// nestedencoder (nenc) - Verschachtelte Zeichenketten-Kodierung
// ============================================================================
//
// Package:     server
// Description: gRPC server exposing the encoder service
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"fmt"
	"net"
	"time"

	mdwerror "github.com/msto63/nestedencoder/foundation/core/error"
	"github.com/msto63/nestedencoder/internal/encoder/service"
	coreGrpc "github.com/msto63/nestedencoder/pkg/core/grpc"
	"github.com/msto63/nestedencoder/pkg/core/health"
	"github.com/msto63/nestedencoder/pkg/core/logging"
	"github.com/msto63/nestedencoder/pkg/core/version"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Ensure Server implements EncoderServiceServer
var _ EncoderServiceServer = (*Server)(nil)

// Server is the nenc gRPC server
type Server struct {
	service   *service.Service
	grpc      *coreGrpc.Server
	health    *health.Registry
	logger    *logging.Logger
	config    Config
	startTime time.Time
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	EnableReflection bool
	MaxRecvMsgSize   int
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:             "0.0.0.0",
		Port:             9090,
		EnableReflection: true,
	}
}

// New creates a new gRPC server around svc. The caller owns svc.
func New(cfg Config, svc *service.Service) *Server {
	logger := logging.New("nenc-grpc")

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection
	if cfg.MaxRecvMsgSize > 0 {
		grpcCfg.MaxRecvMsgSize = cfg.MaxRecvMsgSize
	}

	grpcServer := coreGrpc.NewServer(grpcCfg)

	healthRegistry := health.NewRegistry("nenc-grpc", version.GRPC)
	svc.RegisterHealthChecks(healthRegistry)

	server := &Server{
		service:   svc,
		grpc:      grpcServer,
		health:    healthRegistry,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}

	RegisterEncoderServiceServer(grpcServer.GRPCServer(), server)
	grpcServer.SetServing(ServiceName, true)

	return server
}

// Encode implements EncoderServiceServer.Encode
func (s *Server) Encode(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := RequestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	req.RequestID = coreGrpc.GetRequestID(ctx)

	resp, err := s.service.Encode(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}

	out, err := ResponseToStruct(resp)
	if err != nil {
		s.logger.Error("Failed to build response", "error", err)
		return nil, status.Error(codes.Internal, "failed to build response")
	}
	return out, nil
}

// Options implements EncoderServiceServer.Options
func (s *Server) Options(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	catalog := s.service.Options()
	out, err := CatalogToStruct(&catalog)
	if err != nil {
		s.logger.Error("Failed to build catalog", "error", err)
		return nil, status.Error(codes.Internal, "failed to build catalog")
	}
	return out, nil
}

// Start starts the server and blocks
func (s *Server) Start() error {
	s.logger.Info("Starting nenc gRPC server", "host", s.config.Host, "port", s.config.Port)
	return s.grpc.Start()
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	s.logger.Info("Starting nenc gRPC server (async)", "host", s.config.Host, "port", s.config.Port)
	return s.grpc.StartAsync()
}

// Serve serves on an existing listener and blocks
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping nenc gRPC server", "uptime", time.Since(s.startTime).String())
	s.grpc.StopWithTimeout(ctx)
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// toStatus maps encoder errors to gRPC status codes and attaches the error
// code and details as ErrorInfo.
func toStatus(err error) error {
	code := mdwerror.GetCode(err)

	var grpcCode codes.Code
	switch code {
	case mdwerror.CodeMalformedToken, mdwerror.CodeInvalidInput:
		grpcCode = codes.InvalidArgument
	case mdwerror.CodeMalformedPipeline:
		grpcCode = codes.FailedPrecondition
	case mdwerror.CodeTimeout:
		grpcCode = codes.DeadlineExceeded
	case mdwerror.CodeCanceled:
		grpcCode = codes.Canceled
	default:
		grpcCode = codes.Internal
	}

	st := status.New(grpcCode, err.Error())

	info := &errdetails.ErrorInfo{
		Reason:   string(code),
		Domain:   "nenc",
		Metadata: map[string]string{},
	}
	if e, ok := mdwerror.As(err); ok {
		for k, v := range e.Details() {
			info.Metadata[k] = fmt.Sprint(v)
		}
	}

	if detailed, derr := st.WithDetails(info); derr == nil {
		return detailed.Err()
	}
	return st.Err()
}

// ErrorInfo extracts the encoder error info from a gRPC error
func ErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}
