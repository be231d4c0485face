package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"helpboard/app/models"
	"helpboard/app/render"
)

func (a *app) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the request categories",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range models.Categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", c.ID, c.Label)
			}
		},
	}
}

func (a *app) postsCommand() *cobra.Command {
	var category, search string
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse requests, open ones first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			view := a.postService.DisplayPosts(category, search)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Terminal(view.Posts, a.now()))
			fmt.Fprintln(out, render.TerminalStats(view.Stats))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", models.AllCategories, "category id or \"all\"")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive text in name or description")
	return cmd
}

func (a *app) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the board counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.TerminalStats(a.postService.Stats()))
			return nil
		},
	}
}
