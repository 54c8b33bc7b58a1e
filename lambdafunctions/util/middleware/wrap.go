// Package middleware provides onion-style wrapping for lambda handlers.
//
// Enter runs before the wrapped handler; its output context and payload
// replace the handler's inputs, and a non-nil error skips the handler
// entirely. Exit runs after, receiving the handler's raw output payload and
// error, and may rewrite either.
package middleware

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/samsarahq/go/oops"
)

type Middleware struct {
	Enter func(context.Context, []byte) (context.Context, []byte, error)
	Exit  func(context.Context, []byte, error) ([]byte, error)
}

type wrappedHandler struct {
	handler    lambda.Handler
	middleware Middleware
}

var _ lambda.Handler = (*wrappedHandler)(nil)

func (w *wrappedHandler) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	if w.middleware.Enter != nil {
		enterCtx, enterPayload, err := w.middleware.Enter(ctx, payload)
		if err != nil {
			return enterPayload, oops.Wrapf(err, "middleware error")
		}
		ctx, payload = enterCtx, enterPayload
	}

	output, outputErr := w.handler.Invoke(ctx, payload)
	if w.middleware.Exit == nil {
		return output, outputErr
	}
	return w.middleware.Exit(ctx, output, outputErr)
}

// Wrap layers middleware around handlerFunc, innermost first.
func Wrap(handlerFunc interface{}, middleware ...Middleware) lambda.Handler {
	handler := lambda.NewHandler(handlerFunc)
	for _, mw := range middleware {
		handler = &wrappedHandler{handler: handler, middleware: mw}
	}
	return handler
}

// StartWrapped is a drop-in for lambda.Start with middleware support.
func StartWrapped(handlerFunc interface{}, middleware ...Middleware) {
	lambda.StartHandler(Wrap(handlerFunc, middleware...))
}
