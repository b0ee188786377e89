package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-contract/internal/contract"
	"github.com/jonathan/resume-contract/internal/types"
)

func newWorkspaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Create and manage résumé workspaces",
	}
	cmd.AddCommand(
		newWorkspaceNewCmd(a),
		newWorkspaceGetCmd(a),
		newWorkspaceListCmd(a),
		newWorkspaceDeleteCmd(a),
	)
	return cmd
}

func newWorkspaceNewCmd(a *app) *cobra.Command {
	var (
		from string
		save bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty workspace or one seeded from a payload file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := a.buildWorkspace(from)
			if err != nil {
				return err
			}
			if !save {
				return writeJSON(cmd.OutOrStdout(), ws)
			}

			ctx := cmd.Context()
			st, err := a.store(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.SaveWorkspace(ctx, ws)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Seed the workspace from a parsed payload JSON file")
	cmd.Flags().BoolVar(&save, "save", false, "Store the workspace in the database")
	return cmd
}

func (a *app) buildWorkspace(payloadPath string) (types.Workspace, error) {
	factory := a.normalizer.Factory()
	if payloadPath == "" {
		return factory.CreateEmptyWorkspace(types.Workspace{})
	}

	data, err := os.ReadFile(payloadPath)
	if err != nil {
		return types.Workspace{}, fmt.Errorf("failed to read payload: %w", err)
	}
	payload, err := factory.Validator().ParsedPayload().ParseJSON(data)
	if err != nil {
		return types.Workspace{}, err
	}
	return factory.WorkspaceFromPayload(payload)
}

func newWorkspaceGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Print a stored workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWorkspaceID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := a.store(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.GetWorkspace(ctx, id)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
}

func newWorkspaceListCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored workspaces, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be at least 1")
			}
			ctx := cmd.Context()
			st, err := a.store(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			summaries, err := st.ListWorkspaces(ctx, limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tRESUME\tINPUT\tPARSER\tUPDATED")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					s.ID, s.ResumeID, s.InputType, s.Parser, contract.FormatTimestamp(s.UpdatedAt))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum workspaces to list")
	return cmd
}

func newWorkspaceDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a stored workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWorkspaceID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := a.store(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteWorkspace(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Deleted workspace %s\n", id)
			return nil
		},
	}
}

func parseWorkspaceID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid workspace id %q", s)
	}
	return id, nil
}
