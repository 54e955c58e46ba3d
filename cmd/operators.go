package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"warehouse.GO/core/auth"
	entity "warehouse.GO/model/entity"
	authRepo "warehouse.GO/model/repository/auth"
)

var (
	operatorUsername string
	operatorFullName string
	operatorGroup    string
)

var operatorsCreateCmd = &cobra.Command{
	Use:   "operators:create",
	Short: "Create an operator and issue an API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if operatorUsername == "" {
			return fmt.Errorf("--username is required")
		}
		if !auth.ValidGroup(operatorGroup) {
			return fmt.Errorf("unknown group %q (known: %s)", operatorGroup, strings.Join(auth.GroupNames(), ", "))
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		repo := authRepo.NewAuthRepository(db)
		if _, err := repo.FindOperatorByUsername(operatorUsername); err == nil {
			return fmt.Errorf("operator %q already exists", operatorUsername)
		}
		op := &entity.Operator{Username: operatorUsername, FullName: operatorFullName, GroupName: operatorGroup, IsActive: true}
		if err := repo.CreateOperator(op); err != nil {
			return err
		}
		tok, err := repo.IssueToken(op.OperatorID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created operator %s (id %d, group %s)\n", op.Username, op.OperatorID, op.GroupName)
		fmt.Fprintf(out, "Token: %s\n", tok.Token)
		return nil
	},
}

var groupsListCmd = &cobra.Command{
	Use:   "groups:list",
	Short: "Print the permission matrix of every group",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		groups := auth.GroupNames()
		fmt.Fprintf(w, "PERMISSION\t%s\n", strings.ToUpper(strings.Join(groups, "\t")))
		perms := append([]string(nil), auth.AllPermissions...)
		sort.Strings(perms)
		for _, p := range perms {
			row := []string{p}
			for _, g := range groups {
				mark := "-"
				if auth.Allowed(g, p) {
					mark = "x"
				}
				row = append(row, mark)
			}
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return w.Flush()
	},
}

func init() {
	f := operatorsCreateCmd.Flags()
	f.StringVarP(&operatorUsername, "username", "u", "", "Login name (required)")
	f.StringVar(&operatorFullName, "name", "", "Full name")
	f.StringVarP(&operatorGroup, "group", "g", auth.GroupOperators, "Permission group")
	rootCmd.AddCommand(operatorsCreateCmd, groupsListCmd)
}
