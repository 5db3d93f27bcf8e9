// Package mocks provides centralized mock implementations for testing.
//
// The task and user stores are small in-memory implementations that honour
// the same ownership and not-found rules as the PostgreSQL stores, so service
// and API tests can exercise real behaviour without a database. The JWT
// service and password verifier mocks use function fields and canned values.
//
// Usage:
//
//	tasks := mocks.NewMockTaskStore()
//	svc, _ := service.NewTaskService(tasks, nil)
//
//	tokens := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{UserID: 1}, nil
//	    },
//	}
package mocks
