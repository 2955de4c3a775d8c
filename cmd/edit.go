package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/models"
)

var (
	editTitle       string
	editDescription string
	editPriority    string
	editComplexity  string
	editTags        string
)

// editCmd updates a task's own fields. Relations are edited through the
// dedicated dependency and subtask commands.
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		var patch task.Patch
		changed := false
		if cmd.Flags().Changed("title") {
			patch.Title = &editTitle
			changed = true
		}
		if cmd.Flags().Changed("description") {
			patch.Description = &editDescription
			changed = true
		}
		if cmd.Flags().Changed("priority") {
			p, err := models.ParsePriority(editPriority)
			if err != nil {
				return err
			}
			patch.Priority = &p
			changed = true
		}
		if cmd.Flags().Changed("complexity") {
			c, err := models.ParseComplexity(editComplexity)
			if err != nil {
				return err
			}
			patch.Complexity = &c
			changed = true
		}
		if cmd.Flags().Changed("tags") {
			patch.Tags = splitCommaList(editTags)
			if patch.Tags == nil {
				patch.Tags = []string{}
			}
			changed = true
		}
		if !changed {
			return fmt.Errorf("nothing to edit: pass at least one of --title, --description, --priority, --complexity, --tags")
		}

		return withGraph(func(g *task.Graph) (bool, error) {
			updated, err := g.Update(id, patch)
			if err != nil {
				return false, err
			}
			fmt.Printf("Updated task #%d: %s\n", updated.ID, updated.Title)
			return true, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "new description")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "new priority (low, medium, high, critical)")
	editCmd.Flags().StringVar(&editComplexity, "complexity", "", "new complexity (simple, medium, complex)")
	editCmd.Flags().StringVar(&editTags, "tags", "", "replacement comma-separated tags (empty clears)")
}
