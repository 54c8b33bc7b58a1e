package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/samsarahq/go/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderlake.io/orderlake/lambdafunctions/util/middleware"
)

type testInput struct {
	InValue string `json:"in_value"`
}

type testOutput struct {
	OutValue string `json:"out_value"`
}

func handlerFunc(ctx context.Context, input *testInput) (*testOutput, error) {
	if input.InValue == "badinput" {
		return nil, errors.New("receivedbadinput")
	}
	return &testOutput{OutValue: fmt.Sprintf("out:%s", input.InValue)}, nil
}

func TestWrapWithoutMiddleware(t *testing.T) {
	handler := middleware.Wrap(handlerFunc)
	output, err := handler.Invoke(context.Background(), []byte(`{"in_value":"stuff"}`))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"out_value":"out:stuff"}`), output)
}

func TestWrapEmptyMiddleware(t *testing.T) {
	handler := middleware.Wrap(handlerFunc, middleware.Middleware{})
	output, err := handler.Invoke(context.Background(), []byte(`{"in_value":"stuff"}`))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"out_value":"out:stuff"}`), output)
}

var rewritingMiddleware = middleware.Middleware{
	Enter: func(ctx context.Context, input []byte) (context.Context, []byte, error) {
		if string(input) == "replaceme" {
			return ctx, []byte(`{"in_value":"surprise"}`), nil
		}
		if string(input) == "middlebad" {
			return ctx, []byte("rejected"), errors.New("bad middleware")
		}
		return ctx, input, nil
	},
	Exit: func(ctx context.Context, output []byte, outputErr error) ([]byte, error) {
		if outputErr != nil {
			return output, outputErr
		}
		return append([]byte("!"), output...), nil
	},
}

func TestMiddlewareFlow(t *testing.T) {
	handler := middleware.Wrap(handlerFunc, rewritingMiddleware)

	testCases := []struct {
		input          string
		expectedOutput string
		expectedError  string
	}{
		{
			input:          `{"in_value":"stuff"}`,
			expectedOutput: `!{"out_value":"out:stuff"}`,
		},
		{
			input:          "replaceme",
			expectedOutput: `!{"out_value":"out:surprise"}`,
		},
		{
			input:          "middlebad",
			expectedOutput: "rejected",
			expectedError:  "bad middleware",
		},
		{
			input:          `{"in_value":"badinput"}`,
			expectedOutput: "",
			expectedError:  "receivedbadinput",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			output, err := handler.Invoke(context.Background(), []byte(tc.input))
			if tc.expectedError != "" {
				assert.EqualError(t, oops.Cause(err), tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedOutput, string(output))
		})
	}
}

func TestLogInvocationPassesThrough(t *testing.T) {
	handler := middleware.Wrap(handlerFunc, middleware.LogInvocation)
	output, err := handler.Invoke(context.Background(), []byte(`{"in_value":"stuff"}`))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"out_value":"out:stuff"}`), output)
}
