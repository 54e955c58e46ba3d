package cmd

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterThenApply(t *testing.T) {
	Register(&cobra.Command{
		Use: "test:registry",
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprint(c.OutOrStdout(), "ok")
			return nil
		},
	})
	Apply()
	Apply()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"test:registry"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "ok" {
		t.Errorf("output = %q, want ok", out.String())
	}

	defer func() {
		if recover() == nil {
			t.Error("Register after Apply: want panic")
		}
	}()
	Register(&cobra.Command{Use: "test:late"})
}
