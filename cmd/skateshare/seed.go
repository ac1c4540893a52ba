package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/skateshare"
)

var seedMemories = []struct{ title, content string }{
	{"First time on the lake", "The ice boomed under us all morning.\nWe skated until our toes went numb."},
	{"Night rink", "String lights, hot cocoa and a playlist nobody agreed on."},
	{"Learning to stop", "Three falls, one bruise, and finally a clean hockey stop."},
	{"Snow on the trail", "Fresh powder blew across the path and we glided through it like ghosts."},
	{"Grandpa's skates", "Leather boots older than my dad, still sharp enough to carve."},
	{"Sunrise loop", "Pink sky, empty rink, just the scrape of blades."},
}

func seedCommand(cfg *skateshare.SiteConfig) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample posts for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := skateshare.NewStore(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			for i := 0; i < count; i++ {
				m := seedMemories[i%len(seedMemories)]
				title := m.title
				if i >= len(seedMemories) {
					title = fmt.Sprintf("%s (%d)", m.title, i/len(seedMemories)+1)
				}
				if _, err := store.CreatePost(cmd.Context(), skateshare.NewPost{Title: title, Content: m.content}); err != nil {
					return fmt.Errorf("seed post %d: %w", i+1, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d posts into %s\n", count, cfg.DatabasePath)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 12, "number of posts to insert")
	return cmd
}
