package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todocal/internal/todos"
	"github.com/sandeepkv93/todocal/internal/update"
)

func newLoginCmd(cfg *update.RuntimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in anonymously and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			if current := rt.provider.Current(); current != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "already signed in as %s\n", current.UID)
				return nil
			}
			s, err := todos.Login(cmd.Context(), rt.provider, rt.logger, rt.metrics)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", s.UID)
			return nil
		},
	}
}

func newLogoutCmd(cfg *update.RuntimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := todos.Logout(cmd.Context(), rt.provider, rt.logger, rt.metrics); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(cfg *update.RuntimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			s := rt.provider.Current()
			out := cmd.OutOrStdout()
			if s == nil {
				fmt.Fprintln(out, "not signed in")
				return nil
			}
			fmt.Fprintf(out, "uid: %s\n", s.UID)
			fmt.Fprintf(out, "provider: %s\n", s.Provider)
			fmt.Fprintf(out, "signed in: %s\n", s.CreatedAt.Local().Format(time.RFC3339))
			return nil
		},
	}
}
