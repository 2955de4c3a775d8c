package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/models"
)

var completeAll bool

// completeCmd marks a task done, optionally cascading to the subtree.
var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		return withGraph(func(g *task.Graph) (bool, error) {
			count, err := g.SetStatus(id, models.StatusDone, completeAll)
			if err != nil {
				return false, err
			}
			if count > 1 {
				fmt.Printf("Completed task #%d and %d subtask(s)\n", id, count-1)
			} else {
				fmt.Printf("Completed task #%d\n", id)
			}

			// A parent with unfinished subtasks stays in progress; say so
			// instead of letting the list view surprise the user.
			effective, err := g.EffectiveStatus(id)
			if err != nil {
				return false, err
			}
			if effective != models.StatusDone {
				done, total, _ := g.SubtaskProgress(id)
				fmt.Printf("Note: effective status is %s (%d/%d subtasks done). Use --all to complete the subtree.\n", effective, done, total)
			}
			return true, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)

	completeCmd.Flags().BoolVar(&completeAll, "all", false, "also complete every subtask in the subtree")
}
