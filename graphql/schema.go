package graphql

import (
	_ "embed"
	"strings"
	"sync"

	"warehouse.GO/core/registry"
)

//go:embed schema.graphqls
var schemaBase string

var schemaMu sync.Mutex

func schemaExtensions() []string {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryGraphQLSchema); ok && v != nil {
		return v.([]string)
	}
	return nil
}

// RegisterSchemaExtension appends SDL (typically `extend type Query { ... }`)
// to the base schema. Call from init(); panics once Schema has been read.
func RegisterSchemaExtension(sdl string) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryGraphQLSchema) {
		panic("graphql/schema: locked (register only during init before the schema is parsed)")
	}
	sdl = strings.TrimSpace(sdl)
	if sdl == "" {
		return
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQLSchema, append(schemaExtensions(), sdl))
}

// Schema returns the base schema followed by every registered extension.
func Schema() string {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	registry.GlobalRegistry.Lock(registry.KeyRegistryGraphQLSchema)
	ext := schemaExtensions()
	if len(ext) == 0 {
		return schemaBase
	}
	return schemaBase + "\n\n" + strings.Join(ext, "\n\n")
}
