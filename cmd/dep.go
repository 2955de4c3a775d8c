package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/task"
)

// addDepCmd records that a task depends on another.
var addDepCmd = &cobra.Command{
	Use:   "add-dep <id> <depends-on-id>",
	Short: "Make a task depend on another",
	Long: `Make the first task depend on the second. The dependency is rejected
if it would introduce a cycle.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		depID, err := parseTaskID(args[1])
		if err != nil {
			return err
		}
		return withGraph(func(g *task.Graph) (bool, error) {
			if err := g.AddDependency(taskID, depID); err != nil {
				return false, err
			}
			fmt.Printf("Task #%d now depends on #%d\n", taskID, depID)
			return true, nil
		})
	},
}

// removeDepCmd removes a dependency edge.
var removeDepCmd = &cobra.Command{
	Use:   "remove-dep <id> <depends-on-id>",
	Short: "Remove a dependency between two tasks",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		depID, err := parseTaskID(args[1])
		if err != nil {
			return err
		}
		return withGraph(func(g *task.Graph) (bool, error) {
			if err := g.RemoveDependency(taskID, depID); err != nil {
				return false, err
			}
			fmt.Printf("Task #%d no longer depends on #%d\n", taskID, depID)
			return true, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(addDepCmd)
	rootCmd.AddCommand(removeDepCmd)
}
