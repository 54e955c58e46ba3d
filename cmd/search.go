package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"warehouse.GO/service/search"
)

var searchReindexCmd = &cobra.Command{
	Use:   "search:reindex",
	Short: "Push every item to the Elasticsearch index",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		s := search.NewFromEnv(db)
		if !s.Enabled() {
			return fmt.Errorf("ELASTICSEARCH_HOST is not set")
		}
		n, err := s.Reindex(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d items\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchReindexCmd)
}
