package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trusty-cli/trusty/internal/task"
	"github.com/trusty-cli/trusty/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "trusty",
	Short:   "trusty tracks your tasks as a dependency graph",
	Version: version,
	Long: `trusty is a developer task tracker whose work items form a graph:
tasks contain subtasks and may block one another. It tells you what to
work on next and which stale tasks are worth pruning.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and maps the resulting error class to a
// process exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		PrintError(err)
		os.Exit(ExitCode(err))
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.trusty.yaml or $HOME/.trusty.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// TasksDir returns the directory holding the task and history files.
func TasksDir() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.TasksDir)
}

// TaskFilePath returns the full path to the task graph file.
func TaskFilePath() string {
	return filepath.Join(TasksDir(), GetConfig().Data.File)
}

// HistoryFilePath returns the full path to the prune history file.
func HistoryFilePath() string {
	return filepath.Join(TasksDir(), GetConfig().Data.HistoryFile)
}

// GetStore initializes and returns the task store. A missing task file is
// only treated as an empty graph when the project has been initialized
// (the tasks directory exists); otherwise commands fail and point at init.
func GetStore() (store.TaskStore, error) {
	s := store.NewFileTaskStore()
	config := GetConfig()

	allowMissing := "false"
	if _, err := os.Stat(TasksDir()); err == nil {
		allowMissing = "true"
	}

	err := s.Initialize(map[string]string{
		"dataFile":       TaskFilePath(),
		"dataFileFormat": config.Data.Format,
		"allowMissing":   allowMissing,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", TaskFilePath(), err)
	}
	return s, nil
}

// withGraph loads the graph, runs fn, and saves the graph back when fn
// reports it mutated. The store lock is held for the whole operation.
func withGraph(fn func(g *task.Graph) (mutated bool, err error)) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = taskStore.Close() }()

	g, err := taskStore.Load()
	if err != nil {
		return err
	}
	mutated, err := fn(g)
	if err != nil {
		return err
	}
	if mutated {
		return taskStore.Save(g)
	}
	return nil
}
