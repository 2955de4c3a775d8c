package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/prune"
	"github.com/trusty-cli/trusty/internal/task"
)

var deleteForce bool

// deleteCmd removes a task. Its subtasks are promoted to the deleted
// task's parent and dependency edges through it are dropped.
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		return withGraph(func(g *task.Graph) (bool, error) {
			t, err := g.Get(id)
			if err != nil {
				return false, err
			}

			if !deleteForce {
				label := fmt.Sprintf("Delete task #%d %q", t.ID, t.Title)
				if n := len(t.SubtaskIDs); n > 0 {
					label += fmt.Sprintf(" (%d subtask(s) will be promoted)", n)
				}
				ok, err := confirm(label)
				if err != nil {
					return false, err
				}
				if !ok {
					fmt.Println("Aborted.")
					return false, nil
				}
			}

			if err := g.Delete(id); err != nil {
				return false, err
			}
			dropPruneRecord(id)
			fmt.Printf("Deleted task #%d: %s\n", id, t.Title)
			return true, nil
		})
	},
}

// confirm asks a yes/no question on the terminal.
func confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if err == promptui.ErrAbort || err == promptui.ErrInterrupt || err == promptui.ErrEOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// dropPruneRecord removes a deleted task's backoff record. Best effort:
// history trouble must not fail the deletion itself.
func dropPruneRecord(id int) {
	h, err := prune.LoadHistory(HistoryFilePath())
	if err != nil {
		LogVerbose("prune history unavailable: %v", err)
		return
	}
	if _, ok := h.Get(id); !ok {
		return
	}
	h.Delete(id)
	if err := h.Save(); err != nil {
		LogVerbose("prune history save failed: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
}
