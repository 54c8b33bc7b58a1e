package middleware

import (
	"context"

	"github.com/google/uuid"

	"orderlake.io/orderlake/helpers/slog"
	"orderlake.io/orderlake/lambdafunctions/util"
)

// LogInvocation tags the context with the lambda request id (or a generated
// one outside lambda) and logs the invocation payloads and outcome.
var LogInvocation = Middleware{
	Enter: func(ctx context.Context, input []byte) (context.Context, []byte, error) {
		requestId := util.RequestId(ctx)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		ctx = slog.With(ctx, "requestId", requestId)
		slog.Infow(ctx, "invocation input", "payload", string(input))
		return ctx, input, nil
	},
	Exit: func(ctx context.Context, output []byte, outputErr error) ([]byte, error) {
		slog.Infow(ctx, "invocation output", "payload", string(output))
		if outputErr != nil {
			slog.Errorw(ctx, outputErr, slog.Tag{"phase": "handler"})
		}
		return output, outputErr
	},
}
