package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/update"
	"github.com/sandeepkv93/todocal/internal/views"
)

func newListCmd(cfg *update.RuntimeConfig) *cobra.Command {
	var date string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List to-dos due on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := resolveDate(date)
			if err != nil {
				return err
			}
			rt, err := newRuntime(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			client, err := rt.client(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := client.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if !all {
				list = model.FilterByDate(list, due)
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, views.EmptyListText)
				return nil
			}
			fmt.Fprintln(out, renderTable(list))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "due date to show, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&all, "all", false, "show every loaded to-do regardless of date")
	return cmd
}

func newAddCmd(cfg *update.RuntimeConfig) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a to-do due on a date",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := resolveDate(date)
			if err != nil {
				return err
			}
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return model.ErrEmptyTitle
			}
			rt, err := newRuntime(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			client, err := rt.client(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			if _, err := client.Add(cmd.Context(), title, due); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %q due %s\n", title, due)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "due date, YYYY-MM-DD (default today)")
	return cmd
}

func newToggleCmd(cfg *update.RuntimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a to-do between done and open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			client, err := rt.client(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			todo, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("toggle %s: %w", args[0], err)
			}
			done, err := client.Toggle(cmd.Context(), todo)
			if err != nil {
				return err
			}
			state := "open"
			if done {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s marked %s\n", todo.ID, state)
			return nil
		},
	}
}

func newDeleteCmd(cfg *update.RuntimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a to-do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			client, err := rt.client(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func resolveDate(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return model.Today(time.Now()), nil
	}
	tm, err := model.ParseDate(raw)
	if err != nil {
		return "", err
	}
	return model.FormatDate(tm), nil
}

func renderTable(list []model.Todo) string {
	rows := make([][]string, 0, len(list))
	for _, todo := range list {
		status := "open"
		if todo.Done() {
			status = "done"
		}
		rows = append(rows, []string{todo.ID, todo.DisplayTitle(), todo.DisplayDueDate(), status})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "DUE", "STATUS").
		Rows(rows...).
		Render()
}
