package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/internal/ui"
	"github.com/trusty-cli/trusty/llm"
	"github.com/trusty-cli/trusty/models"
)

var (
	decomposeCount   int
	decomposePreview bool
)

// decomposeCmd asks the text-generation provider to break a task into
// subtasks. Either every proposed subtask is created or none are.
var decomposeCmd = &cobra.Command{
	Use:   "decompose <id>",
	Short: "Break a task into generated subtasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		if decomposeCount < 1 || decomposeCount > 20 {
			return fmt.Errorf("--count must be between 1 and 20")
		}

		provider, err := newProvider()
		if err != nil {
			return err
		}

		return withGraph(func(g *task.Graph) (bool, error) {
			parent, err := g.Get(id)
			if err != nil {
				return false, err
			}

			LogVerbose("decomposing task #%d into %d subtasks", id, decomposeCount)
			generated, err := provider.DecomposeTask(cmd.Context(), llm.ParentContext{
				Title:       parent.Title,
				Description: parent.Description,
				Priority:    string(parent.Priority),
				Tags:        parent.Tags,
			}, decomposeCount)
			if err != nil {
				return false, err
			}
			if len(generated) == 0 {
				return false, fmt.Errorf("provider returned no subtasks for task #%d", id)
			}

			if decomposePreview {
				fmt.Printf("Proposed subtasks for #%d %s:\n", parent.ID, parent.Title)
				for i, gt := range generated {
					fmt.Printf("  %d. %s\n", i+1, ui.StyleTitle.Render(gt.Title))
					if gt.Description != "" {
						fmt.Printf("     %s\n", ui.StyleSubtle.Render(gt.Description))
					}
				}
				fmt.Println("Re-run without --preview to create them.")
				return false, nil
			}

			drafts := make([]task.Draft, 0, len(generated))
			for _, gt := range generated {
				d := task.Draft{Title: gt.Title, Description: gt.Description, Tags: gt.Tags}
				if gt.Priority != "" {
					if p, err := models.ParsePriority(gt.Priority); err == nil {
						d.Priority = p
					}
				}
				drafts = append(drafts, d)
			}

			created, err := g.AddSubtasks(id, drafts)
			if err != nil {
				return false, err
			}
			fmt.Printf("Created %d subtask(s) under #%d:\n", len(created), id)
			for _, c := range created {
				fmt.Printf("  #%d %s\n", c.ID, c.Title)
			}
			return true, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(decomposeCmd)

	decomposeCmd.Flags().IntVar(&decomposeCount, "count", 3, "number of subtasks to generate")
	decomposeCmd.Flags().BoolVar(&decomposePreview, "preview", false, "print proposals without creating them")
}
