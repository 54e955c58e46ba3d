package registry

// Keys of the extension registries held in GlobalRegistry.
const (
	KeyRegistryCmd           = "registry:cmd"
	KeyRegistryCron          = "registry:cron"
	KeyRegistryAPI           = "registry:api"
	KeyRegistryRoutes        = "registry:routes"
	KeyRegistryGraphQL       = "registry:graphql"
	KeyRegistryGraphQLSchema = "registry:graphql:schema"
)
