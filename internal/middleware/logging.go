package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/schedulist/schedulist/internal/rpc"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// Each call gets a generated request id so client-reported failures can be
// matched against server logs.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := strings.TrimPrefix(req.Spec().Procedure, rpc.RPCPrefix)
			requestID := uuid.New().String()

			resp, err := next(ctx, req)

			userID := GetUserID(ctx) // empty if pre-auth
			slug := GetSlug(ctx)
			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					slog.Warn("RPC error",
						"procedure", procedure,
						"request_id", requestID,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"user_id", userID,
						"slug", slug,
						"duration_ms", duration,
					)
				} else {
					slog.Error("RPC error",
						"procedure", procedure,
						"request_id", requestID,
						"error", err,
						"user_id", userID,
						"slug", slug,
						"duration_ms", duration,
					)
				}
			} else {
				slog.Info("RPC ok",
					"procedure", procedure,
					"request_id", requestID,
					"user_id", userID,
					"slug", slug,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
