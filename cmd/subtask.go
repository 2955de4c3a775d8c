package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/models"
)

var (
	subtaskDescription string
	subtaskPriority    string
	subtaskTags        string
)

// addSubtaskCmd creates a new task contained in an existing one. Unless
// overridden by flags, the subtask inherits the parent's priority and tags.
var addSubtaskCmd = &cobra.Command{
	Use:   "add-subtask <parent-id> <title>",
	Short: "Add a subtask under a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parentID, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		title := strings.TrimSpace(args[1])
		if title == "" {
			return fmt.Errorf("subtask title must not be empty")
		}

		d := task.Draft{Title: title, Description: subtaskDescription}
		if subtaskPriority != "" {
			p, err := models.ParsePriority(subtaskPriority)
			if err != nil {
				return err
			}
			d.Priority = p
		}
		if subtaskTags != "" {
			d.Tags = splitCommaList(subtaskTags)
		}

		return withGraph(func(g *task.Graph) (bool, error) {
			created, err := g.AddSubtask(parentID, d)
			if err != nil {
				return false, err
			}
			fmt.Printf("Created subtask #%d under #%d: %s\n", created.ID, parentID, created.Title)
			return true, nil
		})
	},
}

// removeSubtaskCmd detaches a subtask from its parent, making it a root
// task. The subtask itself is not deleted.
var removeSubtaskCmd = &cobra.Command{
	Use:   "remove-subtask <parent-id> <child-id>",
	Short: "Detach a subtask from its parent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parentID, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		childID, err := parseTaskID(args[1])
		if err != nil {
			return err
		}
		return withGraph(func(g *task.Graph) (bool, error) {
			if err := g.RemoveSubtask(parentID, childID); err != nil {
				return false, err
			}
			fmt.Printf("Task #%d is no longer a subtask of #%d\n", childID, parentID)
			return true, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(addSubtaskCmd)
	rootCmd.AddCommand(removeSubtaskCmd)

	addSubtaskCmd.Flags().StringVarP(&subtaskDescription, "description", "d", "", "subtask description")
	addSubtaskCmd.Flags().StringVarP(&subtaskPriority, "priority", "p", "", "priority (defaults to the parent's)")
	addSubtaskCmd.Flags().StringVar(&subtaskTags, "tags", "", "comma-separated tags (default to the parent's)")
}
