package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/resetwatch/internal/cli"
)

func charactersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "characters",
		Aliases: []string{"chars"},
		Short:   "Manage characters",
		Long:    `List characters or create a new one. New characters start with a copy of the Default character's vendors.`,
	}

	cmd.AddCommand(charactersListCmd())
	cmd.AddCommand(charactersCreateCmd())

	return cmd
}

func charactersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			t, cleanup, err := initTracker(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()
			if loadErr := t.LoadErr(); loadErr != nil {
				printf(cmd.ErrOrStderr(), "%s\n", cli.FormatWarning(loadErr.Error()))
			}

			characters, err := t.ListCharacters(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range characters {
				marker := "  "
				if c == t.Character() {
					marker = cli.SuccessStyle.Render("* ")
				}
				printf(out, "%s%s\n", marker, c)
			}
			return nil
		},
	}
}

func charactersCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, cleanup, err := initTracker(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := t.CreateCharacter(ctx, args[0])
			if err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess("Created "+id+" with "+countVendors(len(t.Vendors()))))
			return nil
		},
	}
}
