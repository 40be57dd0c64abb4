package test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCtx matches any non-nil context in mock expectations.
func MockCtx() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil })
}
