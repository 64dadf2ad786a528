package config

// GetAuthSkipperPaths returns paths that skip the API auth middleware.
func GetAuthSkipperPaths() []string {
	// Login must be reachable without credentials; GraphQL is read-only.
	return []string{"/api/auth/login", "/graphql", "/health"}
}
