package cmd

import (
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/internal/prune"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/internal/ui"
	"github.com/trusty-cli/trusty/models"
)

var (
	pruneAuto   bool
	pruneDryRun bool
)

// pruneCmd surfaces stale finished tasks and offers to delete them. A
// dismissed suggestion backs off exponentially, so the same task is not
// re-suggested on every run.
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Suggest stale finished tasks for deletion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := prune.ConfigFromStrings(
			GetConfig().Prune.StaleAfter,
			GetConfig().Prune.BaseInterval,
			GetConfig().Prune.MaxInterval,
		)
		if err != nil {
			return err
		}
		history, err := prune.LoadHistory(HistoryFilePath())
		if err != nil {
			return err
		}
		advisor := prune.NewAdvisor(cfg, history)
		now := time.Now().UTC()

		return withGraph(func(g *task.Graph) (bool, error) {
			type suggestion struct {
				t         models.Task
				effective models.TaskStatus
			}
			var suggestions []suggestion
			for _, t := range g.Tasks() {
				effective, err := g.EffectiveStatus(t.ID)
				if err != nil {
					return false, err
				}
				if advisor.Evaluate(t, effective, now) == prune.VerdictSuggest {
					suggestions = append(suggestions, suggestion{t: t, effective: effective})
				}
			}

			if len(suggestions) == 0 {
				fmt.Println("Nothing to prune.")
				return false, nil
			}

			if pruneDryRun {
				fmt.Printf("%d task(s) would be suggested for pruning:\n", len(suggestions))
				for _, s := range suggestions {
					age := now.Sub(s.t.UpdatedAt).Round(24 * time.Hour)
					fmt.Printf("  %s #%d %s %s\n", ui.RenderStatus(s.effective), s.t.ID, s.t.Title,
						ui.StyleSubtle.Render(fmt.Sprintf("(untouched for %s)", age)))
				}
				return false, nil
			}

			mutated := false
			for _, s := range suggestions {
				advisor.Suggested(s.t.ID, now)

				accept := pruneAuto
				if !pruneAuto {
					choice, err := prunePrompt(s.t, s.effective, now)
					if err != nil {
						return false, err
					}
					if choice == pruneChoiceQuit {
						break
					}
					accept = choice == pruneChoiceAccept
				}

				if accept {
					if err := g.Delete(s.t.ID); err != nil {
						return false, err
					}
					advisor.Accepted(s.t.ID)
					mutated = true
					fmt.Printf("Pruned task #%d: %s\n", s.t.ID, s.t.Title)
				} else {
					advisor.Dismissed(s.t.ID, now)
					fmt.Printf("Kept task #%d; will not suggest it again for a while\n", s.t.ID)
				}
			}

			// Records for tasks deleted outside of prune are dead weight.
			live := make(map[int]bool, g.Len())
			for _, t := range g.Tasks() {
				live[t.ID] = true
			}
			if n := history.GC(live); n > 0 {
				LogVerbose("dropped %d stale backoff record(s)", n)
			}

			if err := history.Save(); err != nil {
				return false, err
			}
			return mutated, nil
		})
	},
}

type pruneChoice int

const (
	pruneChoiceAccept pruneChoice = iota
	pruneChoiceDismiss
	pruneChoiceQuit
)

// prunePrompt asks what to do with one suggested task.
func prunePrompt(t models.Task, effective models.TaskStatus, now time.Time) (pruneChoice, error) {
	age := now.Sub(t.UpdatedAt).Round(24 * time.Hour)
	fmt.Printf("\n%s #%d %s %s\n", ui.RenderStatus(effective), t.ID, ui.StyleTitle.Render(t.Title),
		ui.StyleSubtle.Render(fmt.Sprintf("(untouched for %s)", age)))

	sel := promptui.Select{
		Label: "Prune this task?",
		Items: []string{"Delete it", "Keep it", "Stop pruning"},
	}
	idx, _, err := sel.Run()
	if err == promptui.ErrInterrupt || err == promptui.ErrEOF {
		return pruneChoiceQuit, nil
	}
	if err != nil {
		return pruneChoiceQuit, err
	}
	switch idx {
	case 0:
		return pruneChoiceAccept, nil
	case 1:
		return pruneChoiceDismiss, nil
	default:
		return pruneChoiceQuit, nil
	}
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().BoolVar(&pruneAuto, "auto", false, "accept every suggestion without prompting")
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "list suggestions without changing anything")
}
