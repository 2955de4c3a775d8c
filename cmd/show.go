package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/internal/ui"
)

// showCmd prints the full detail view of one task.
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in detail",
	Args:  cobra.ExactArgs(1),
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
			effective, err := g.EffectiveStatus(id)
			if err != nil {
				return false, err
			}

			fmt.Printf("%s %s\n", ui.StyleSubtle.Render("#"+strconv.Itoa(t.ID)), ui.StyleTitle.Render(t.Title))
			if t.Description != "" {
				fmt.Println(t.Description)
			}
			fmt.Println()
			fmt.Printf("  Status:    %s", ui.RenderStatus(effective))
			if effective != t.Status {
				fmt.Printf("  %s", ui.StyleSubtle.Render("(explicit: "+string(t.Status)+")"))
			}
			fmt.Println()
			fmt.Printf("  Priority:  %s\n", ui.RenderPriority(t.Priority))
			if t.Complexity != "" {
				fmt.Printf("  Complexity: %s\n", t.Complexity)
			}
			if len(t.Tags) > 0 {
				fmt.Printf("  Tags:      %s\n", joinStrings(t.Tags))
			}
			if t.ParentID != nil {
				parent, err := g.Get(*t.ParentID)
				if err == nil {
					fmt.Printf("  Parent:    #%d %s\n", parent.ID, parent.Title)
				}
			}

			printRelated(g, "Depends on", t.Dependencies)
			printRelated(g, "Blocks", t.Dependents)

			if len(t.SubtaskIDs) > 0 {
				done, total, _ := g.SubtaskProgress(id)
				fmt.Printf("  Subtasks (%d/%d done):\n", done, total)
				for _, cid := range t.SubtaskIDs {
					child, err := g.Get(cid)
					if err != nil {
						continue
					}
					childEff, _ := g.EffectiveStatus(cid)
					fmt.Printf("    %s #%d %s\n", ui.RenderStatus(childEff), child.ID, child.Title)
				}
			}

			fmt.Println()
			fmt.Printf("  Created:   %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
			fmt.Printf("  Updated:   %s\n", t.UpdatedAt.Local().Format("2006-01-02 15:04"))
			if t.CompletedAt != nil {
				fmt.Printf("  Completed: %s\n", t.CompletedAt.Local().Format("2006-01-02 15:04"))
			}
			return false, nil
		})
	},
}

// printRelated prints one labelled line per related task, skipping the
// label entirely when the list is empty.
func printRelated(g *task.Graph, label string, ids []int) {
	if len(ids) == 0 {
		return
	}
	fmt.Printf("  %s:\n", label)
	for _, id := range ids {
		t, err := g.Get(id)
		if err != nil {
			continue
		}
		effective, _ := g.EffectiveStatus(id)
		fmt.Printf("    %s #%d %s\n", ui.RenderStatus(effective), t.ID, t.Title)
	}
}

func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func joinStrings(xs []string) string {
	out := ""
	for i, x := range xs {
		if i > 0 {
			out += ", "
		}
		out += x
	}
	return out
}

func init() {
	rootCmd.AddCommand(showCmd)
}
