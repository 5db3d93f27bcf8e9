package auth_test

import "github.com/phrazzld/tasklog-api/internal/config"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 5,
		BcryptCost:           4,
	}
}
