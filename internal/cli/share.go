package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/share"
)

const defaultShareBase = "http://localhost:8080/"

func newShareCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Move registered tickets between devices as links",
	}

	var flagGroup, flagBase string
	export := &cobra.Command{
		Use:   "export",
		Short: "Print the share link of a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := o.openStore()
			if err != nil {
				return err
			}
			state, err := store.LoadState()
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}
			groupID, err := resolveGroup(state, flagGroup)
			if err != nil {
				return err
			}
			group := state.Groups[advent.FindGroup(state.Groups, groupID)]

			link := share.URL(flagBase, group)
			format, _ := o.outputFormat()
			if format == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"url": link})
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	export.Flags().StringVar(&flagGroup, "group", "", "Group ID (default: first group)")
	export.Flags().StringVar(&flagBase, "base", defaultShareBase, "Base URL of the link")

	importCmd := &cobra.Command{
		Use:   "import <link-or-fragment>",
		Short: "Replace the registered tickets with the ones from a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragment := args[0]
			if i := strings.Index(fragment, "#"); i >= 0 {
				fragment = fragment[i:]
			}
			groups, err := share.Decode(fragment)
			if err != nil {
				return fmt.Errorf("importing share link: %w", err)
			}

			store, err := o.openStore()
			if err != nil {
				return err
			}
			state, err := store.LoadState()
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}
			state.Groups = groups
			if err := store.SaveState(state); err != nil {
				return fmt.Errorf("saving state: %w", err)
			}

			format, _ := o.outputFormat()
			return WriteGroups(cmd.OutOrStdout(), groups, format, o.verbose)
		},
	}

	cmd.AddCommand(export, importCmd)
	return cmd
}
