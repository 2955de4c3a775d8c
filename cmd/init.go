package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trusty-cli/trusty/store"
)

// initCmd creates the project task directory and an empty task file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a trusty project in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := TasksDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create tasks directory %s: %w", dir, err)
		}

		s := store.NewFileTaskStore()
		err := s.Initialize(map[string]string{
			"dataFile":       TaskFilePath(),
			"dataFileFormat": GetConfig().Data.Format,
			"allowMissing":   "true",
		})
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		// Re-running init must not wipe an existing graph.
		g, err := s.Load()
		if err != nil {
			return err
		}
		if err := s.Save(g); err != nil {
			return err
		}

		fmt.Printf("Initialized trusty project. Tasks will be stored in %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
