package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"focushub/internal/app"
	"focushub/internal/core/tasks"

	"github.com/spf13/cobra"
)

const historyTimeLayout = "2006-01-02 15:04"

func newTasksCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:     "tasks",
		Short:   "List and edit the task list",
		Aliases: []string{"task"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			out := cmd.OutOrStdout()
			printTasks(out, core.Tasks.Tasks())
			if !watch {
				return nil
			}
			return watchStore(cmd, core, func() error {
				core.Tasks.Load()
				fmt.Fprintln(out)
				printTasks(out, core.Tasks.Tasks())
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep printing as the list changes")

	cmd.AddCommand(
		newTasksAddCmd(),
		newTasksEditCmd(),
		newTasksCompleteCmd("done", "Mark a task done", true),
		newTasksCompleteCmd("undo", "Mark a task not done", false),
		newTasksRemoveCmd(),
		newTasksHistoryCmd(),
		newTasksClearHistoryCmd(),
	)

	return cmd
}

func newTasksAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			if _, err := core.Tasks.Add(strings.Join(args, " ")); err != nil {
				return fmt.Errorf("add task: %w", err)
			}
			printTasks(cmd.OutOrStdout(), core.Tasks.Tasks())
			return nil
		},
	}
}

func newTasksEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <number> <text>",
		Short: "Change the text of an open task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			task, err := taskAt(core, args[0])
			if err != nil {
				return err
			}
			if task.Completed {
				return fmt.Errorf("edit task %s: completed tasks cannot be edited", args[0])
			}
			if err := core.Tasks.Edit(task.ID, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), core.Tasks.Tasks())
			return nil
		},
	}
}

func newTasksCompleteCmd(use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <number>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			task, err := taskAt(core, args[0])
			if err != nil {
				return err
			}
			if err := core.Tasks.SetCompleted(task.ID, completed); err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), core.Tasks.Tasks())
			return nil
		},
	}
}

func newTasksRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <number>",
		Short:   "Delete a task; completed tasks move to the history",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, yes)
			if err != nil {
				return err
			}
			defer core.Close()

			task, err := taskAt(core, args[0])
			if err != nil {
				return err
			}
			if err := core.Tasks.Delete(task.ID); err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), core.Tasks.Tasks())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before deleting an open task")

	return cmd
}

func newTasksHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List completed tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, false)
			if err != nil {
				return err
			}
			defer core.Close()

			printHistory(cmd.OutOrStdout(), core.Tasks.History())
			return nil
		},
	}
}

func newTasksClearHistoryCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-history",
		Short: "Remove every archived task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := openCore(cmd, yes)
			if err != nil {
				return err
			}
			defer core.Close()

			core.Tasks.ClearHistory()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

// taskAt resolves a 1-based list position.
func taskAt(core *app.App, position string) (tasks.Task, error) {
	number, err := strconv.Atoi(position)
	if err != nil {
		return tasks.Task{}, fmt.Errorf("task number %q: not a number", position)
	}
	list := core.Tasks.Tasks()
	if number < 1 || number > len(list) {
		return tasks.Task{}, fmt.Errorf("task %d: %w", number, tasks.ErrTaskNotFound)
	}
	return list[number-1], nil
}

func printTasks(out io.Writer, list []tasks.Task) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return
	}

	rows := make([][]string, 0, len(list))
	for i, task := range list {
		done := " "
		if task.Completed {
			done = "x"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), done, truncateCell(task.Text)})
	}
	fmt.Fprint(out, renderTable([]string{"#", "DONE", "TASK"}, rows))
}

func printHistory(out io.Writer, history []tasks.HistoryEntry) {
	if len(history) == 0 {
		fmt.Fprintln(out, "No completed tasks.")
		return
	}

	rows := make([][]string, 0, len(history))
	for _, entry := range history {
		completed := "-"
		if !entry.CompletedAt.IsZero() {
			completed = entry.CompletedAt.Local().Format(historyTimeLayout)
		}
		rows = append(rows, []string{completed, truncateCell(entry.Text)})
	}
	fmt.Fprint(out, renderTable([]string{"COMPLETED", "TASK"}, rows))
}
