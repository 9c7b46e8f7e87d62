package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jxhee99/HappyMeal/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local search cache",
}

var cachePurgeAll bool

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove expired cached searches (--all removes everything)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(db *sql.DB) error {
			n, err := cache.Purge(db, cachePurgeAll)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cached searches\n", n)
			return nil
		})
	},
}

func init() {
	cachePurgeCmd.Flags().BoolVar(&cachePurgeAll, "all", false, "Remove every cached search")
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
