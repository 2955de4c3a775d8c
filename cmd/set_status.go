package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/models"
)

var setStatusCascade bool

// setStatusCmd sets a task's explicit status.
var setStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Set a task's status",
	Long: `Set a task's explicit status. Valid statuses: pending, in-progress,
done, blocked, deferred, cancelled.

A parent task's displayed status is derived from its subtasks, so setting
a parent's explicit status only takes effect once the subtasks allow it
(cancelled always wins).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		status, err := models.ParseStatus(args[1])
		if err != nil {
			return err
		}
		return withGraph(func(g *task.Graph) (bool, error) {
			count, err := g.SetStatus(id, status, setStatusCascade)
			if err != nil {
				return false, err
			}
			effective, err := g.EffectiveStatus(id)
			if err != nil {
				return false, err
			}
			if count > 1 {
				fmt.Printf("Task #%d and %d subtask(s) set to %s", id, count-1, status)
			} else {
				fmt.Printf("Task #%d status set to %s", id, status)
			}
			if effective != status {
				fmt.Printf(" (effective: %s)", effective)
			}
			fmt.Println()
			return true, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(setStatusCmd)

	setStatusCmd.Flags().BoolVar(&setStatusCascade, "cascade", false, "apply the status to the entire subtree")
}
