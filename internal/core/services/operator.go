package services

import "context"

type operatorKey struct{}

// WithOperator attaches the id of the employee performing the request
func WithOperator(ctx context.Context, empID uint) context.Context {
	return context.WithValue(ctx, operatorKey{}, empID)
}

// OperatorFromCtx returns the operator id, nil when the request is anonymous
func OperatorFromCtx(ctx context.Context) *uint {
	id, ok := ctx.Value(operatorKey{}).(uint)
	if !ok || id == 0 {
		return nil
	}
	return &id
}
