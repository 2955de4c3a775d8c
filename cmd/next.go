package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/internal/ui"
	"github.com/trusty-cli/trusty/models"
)

var nextStart bool

// nextCmd recommends the task to work on next: the highest-priority
// pending task whose dependencies are all done, oldest first on ties.
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Recommend the next task to work on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGraph(func(g *task.Graph) (bool, error) {
			id, ok := g.RecommendNext()
			if !ok {
				fmt.Println("Nothing to do: no pending task has all its dependencies done.")
				return false, nil
			}
			t, err := g.Get(id)
			if err != nil {
				return false, err
			}

			fmt.Printf("Next up: %s #%d %s\n", ui.RenderPriority(t.Priority), t.ID, ui.StyleTitle.Render(t.Title))
			if t.Description != "" {
				fmt.Println(ui.StyleSubtle.Render(t.Description))
			}
			if t.ParentID != nil {
				if parent, err := g.Get(*t.ParentID); err == nil {
					fmt.Printf("Part of: #%d %s\n", parent.ID, parent.Title)
				}
			}

			if nextStart {
				if _, err := g.SetStatus(id, models.StatusInProgress, false); err != nil {
					return false, err
				}
				fmt.Printf("Task #%d marked in-progress\n", id)
				return true, nil
			}
			return false, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(nextCmd)

	nextCmd.Flags().BoolVar(&nextStart, "start", false, "mark the recommended task in-progress")
}
