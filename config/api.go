package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Health and the read-only GraphQL endpoint stay public
	return []string{"/api/health", "/graphql"}
}
