// Package mocks provides in-memory stores and function-field mocks shared by
// the service and API tests.
//
// MockTaskStore and MockUserStore behave like a real store (identifiers,
// timestamps, uniqueness) unless a Fn field overrides a method:
//
//	tasks := mocks.NewMockTaskStore()
//	tasks.DeleteFn = func(ctx context.Context, id string) (*domain.Task, error) {
//	    return nil, store.ErrTaskNotFound
//	}
//
// TestifyMockUserStore is a mock.Mock based alternative for tests that need
// call expectations.
package mocks
