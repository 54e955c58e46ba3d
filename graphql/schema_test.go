package graphql

import (
	"strings"
	"testing"

	"warehouse.GO/core/registry"
)

func TestSchemaExtensions(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryGraphQLSchema)
	RegisterSchemaExtension("  extend type Query { binCount: Int! }  ")
	RegisterSchemaExtension("   ")
	t.Cleanup(func() {
		registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryGraphQLSchema)
		registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQLSchema, nil)
	})

	s := Schema()
	if !strings.HasPrefix(s, "schema {") {
		t.Errorf("schema does not start with the base SDL")
	}
	if !strings.HasSuffix(s, "\n\nextend type Query { binCount: Int! }") {
		t.Errorf("extension missing or untrimmed: %q", s[len(s)-60:])
	}

	defer func() {
		if recover() == nil {
			t.Error("registering after Schema: want panic")
		}
	}()
	RegisterSchemaExtension("extend type Query { late: Int }")
}
