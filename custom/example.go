// Package custom holds site-specific extensions wired through the
// GraphQL, CLI and HTTP registries.
package custom

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"warehouse.GO/api"
	"warehouse.GO/cmd"
	"warehouse.GO/core/auth"
	gqlregistry "warehouse.GO/graphql/registry"
)

type permissionsArgs struct {
	Group string `mapstructure:"group"`
}

// GroupPermissions returns the sorted permissions of group.
func GroupPermissions(group string) ([]string, error) {
	if !auth.ValidGroup(group) {
		return nil, fmt.Errorf("unknown group %q", group)
	}
	perms := append([]string(nil), auth.Groups[group]...)
	sort.Strings(perms)
	return perms, nil
}

func init() {
	// GraphQL: _extension(name: "permissions", args: "{\"group\":\"operators\"}")
	gqlregistry.Register("permissions", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		var in permissionsArgs
		if err := gqlregistry.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		if in.Group == "" {
			in.Group = auth.GroupOperators
		}
		perms, err := GroupPermissions(in.Group)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"group": in.Group, "permissions": perms}, nil
	})

	var checkGroup, checkPerm string
	check := &cobra.Command{
		Use:   "permissions:check",
		Short: "Tell whether a group holds a permission",
		RunE: func(c *cobra.Command, args []string) error {
			if !auth.ValidGroup(checkGroup) {
				return fmt.Errorf("unknown group %q", checkGroup)
			}
			verdict := "denied"
			if auth.Allowed(checkGroup, checkPerm) {
				verdict = "allowed"
			}
			fmt.Fprintf(c.OutOrStdout(), "%s: %s %s\n", checkGroup, checkPerm, verdict)
			return nil
		},
	}
	check.Flags().StringVarP(&checkGroup, "group", "g", auth.GroupOperators, "Group name")
	check.Flags().StringVarP(&checkPerm, "perm", "p", "", "Permission codename")
	check.MarkFlagRequired("perm")
	cmd.Register(check)

	api.RegisterGET("/groups", func(c echo.Context) error {
		out := map[string][]string{}
		for _, g := range auth.GroupNames() {
			perms, _ := GroupPermissions(g)
			out[g] = perms
		}
		return c.JSON(http.StatusOK, out)
	})
}
