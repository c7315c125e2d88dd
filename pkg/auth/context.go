package auth

import (
	"context"
	"errors"
)

type contextKey string

const operatorKey contextKey = "operator"

// ErrNoOperator means the request carries no authenticated operator.
var ErrNoOperator = errors.New("auth: no operator in context")

// OperatorFromCtx returns the operator set by RequireOperator.
func OperatorFromCtx(ctx context.Context) (string, error) {
	op, ok := ctx.Value(operatorKey).(string)
	if !ok || op == "" {
		return "", ErrNoOperator
	}
	return op, nil
}

func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, operatorKey, operator)
}
