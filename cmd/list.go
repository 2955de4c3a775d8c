package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/internal/ui"
	"github.com/trusty-cli/trusty/models"
)

var (
	listStatus   string
	listPriority string
	listTag      string
	listParent   int
)

// listCmd prints tasks as a table with effective status and progress.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var statusFilter models.TaskStatus
		if listStatus != "" {
			st, err := models.ParseStatus(listStatus)
			if err != nil {
				return err
			}
			statusFilter = st
		}
		var priorityFilter models.TaskPriority
		if listPriority != "" {
			p, err := models.ParsePriority(listPriority)
			if err != nil {
				return err
			}
			priorityFilter = p
		}

		return withGraph(func(g *task.Graph) (bool, error) {
			tasks := g.Tasks()
			table := &ui.Table{Headers: []string{"ID", "Title", "Status", "Priority", "Progress", "Deps"}}

			for _, t := range tasks {
				effective, err := g.EffectiveStatus(t.ID)
				if err != nil {
					return false, err
				}
				if statusFilter != "" && effective != statusFilter {
					continue
				}
				if priorityFilter != "" && t.Priority != priorityFilter {
					continue
				}
				if listTag != "" && !hasTag(t, listTag) {
					continue
				}
				if listParent > 0 && (t.ParentID == nil || *t.ParentID != listParent) {
					continue
				}

				progress := ""
				if len(t.SubtaskIDs) > 0 {
					done, total, _ := g.SubtaskProgress(t.ID)
					progress = fmt.Sprintf("%d/%d", done, total)
				}
				deps := ""
				if len(t.Dependencies) > 0 {
					deps = intsToString(t.Dependencies)
				}
				title := t.Title
				if t.ParentID != nil {
					title = ui.StyleSubtle.Render("└ ") + title
				}
				table.Rows = append(table.Rows, []string{
					strconv.Itoa(t.ID),
					title,
					ui.RenderStatus(effective),
					ui.RenderPriority(t.Priority),
					progress,
					deps,
				})
			}

			if len(table.Rows) == 0 {
				fmt.Println("No tasks found.")
				return false, nil
			}
			fmt.Print(table.Render())
			return false, nil
		})
	},
}

// hasTag matches against the task's normalized tag set, so the filter
// accepts the same spellings the write path does.
func hasTag(t models.Task, tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, x := range t.Tags {
		if x == tag {
			return true
		}
	}
	return false
}

func intsToString(ids []int) string {
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += ","
		}
		s += strconv.Itoa(id)
	}
	return s
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by effective status")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "filter by priority")
	listCmd.Flags().StringVar(&listTag, "tag", "", "filter by tag")
	listCmd.Flags().IntVar(&listParent, "parent", 0, "show only subtasks of the given task")
}
