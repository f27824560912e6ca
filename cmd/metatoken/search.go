package main

import (
	"errors"

	"github.com/goliatone/go-meta-tokens/providers/meta/pages"
	"github.com/spf13/cobra"
)

func newSearchCmd(state *cliState) *cobra.Command {
	var query pages.SearchQuery
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search public pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if query.Q == "" || query.AccessToken == "" {
				return errors.New("metatoken: --q and --token are required")
			}
			outcome, err := state.facade.Pages().Search(cmd.Context(), query)
			response, err := unwrapOutcome(state, "pages search", outcome, err)
			if err != nil {
				return err
			}
			renderPages(state.out, response)
			return nil
		},
	}
	cmd.Flags().StringVar(&query.Q, "q", "", "search terms")
	cmd.Flags().StringVar(&query.AccessToken, "token", "", "user or app access token")
	cmd.Flags().IntVar(&query.Limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&query.After, "after", "", "cursor from a previous search")
	return cmd
}
