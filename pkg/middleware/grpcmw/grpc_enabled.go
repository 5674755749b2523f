//go:build grpc

package grpcmw

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/neurallog/neurallog-go"
)

func actualOptions(opts ...Option) options {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.traceKey == "" {
		cfg.traceKey = "x-trace-id"
	}

	if cfg.requestKey == "" {
		cfg.requestKey = "x-request-id"
	}

	return cfg
}

// UnaryServerInterceptor records one entry per unary RPC: full method, status
// code, duration, and correlation ids from incoming metadata. RPC handling
// never waits on the collector.
func UnaryServerInterceptor(logger neurallog.Logger, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := actualOptions(opts...)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		data := map[string]neurallog.Value{
			"method":      neurallog.String(info.FullMethod),
			"code":        neurallog.String(status.Code(err).String()),
			"duration_ms": neurallog.Float(float64(time.Since(start)) / float64(time.Millisecond)),
		}

		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(cfg.traceKey); len(values) > 0 {
				data["trace_id"] = neurallog.String(values[0])
			}

			if values := md.Get(cfg.requestKey); len(values) > 0 {
				data["request_id"] = neurallog.String(values[0])
			}
		}

		scoped := logger.WithData(data)
		if err != nil {
			scoped.WithError(err).Error("rpc completed")
		} else {
			scoped.Info("rpc completed")
		}

		return resp, err
	}
}
