package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/storage"
)

func newMembersCmd(o *options) *cobra.Command {
	var flagGroup string

	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage registered tickets",
	}
	cmd.PersistentFlags().StringVar(&flagGroup, "group", "", "Group ID (default: first group)")

	// edit loads the state, applies fn to the groups and saves the result
	edit := func(cmd *cobra.Command, fn func(groups []advent.Group, groupID string) ([]advent.Group, error)) error {
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
		groups, err := fn(state.Groups, groupID)
		if err != nil {
			return err
		}
		state.Groups = groups
		if err := store.SaveState(state); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}

		format, _ := o.outputFormat()
		return WriteGroups(cmd.OutOrStdout(), groups, format, o.verbose)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List groups and tickets",
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
			format, _ := o.outputFormat()
			return WriteGroups(cmd.OutOrStdout(), state.Groups, format, o.verbose)
		},
	}

	var flagAvatar string
	add := &cobra.Command{
		Use:   "add <number> [name]",
		Short: "Register a ticket number",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 1 {
				name = args[1]
			}
			avatar := flagAvatar
			if avatar == "" {
				avatar = advent.RandomAvatar()
			}
			m, err := advent.NewMember(name, args[0], avatar)
			if err != nil {
				return err
			}
			return edit(cmd, func(groups []advent.Group, groupID string) ([]advent.Group, error) {
				return advent.AddMember(groups, groupID, m)
			})
		},
	}
	add.Flags().StringVar(&flagAvatar, "avatar", "", "Avatar glyph (default: random)")

	var flagName, flagNumber, flagEditAvatar string
	editCmd := &cobra.Command{
		Use:   "edit <member-id>",
		Short: "Change a ticket's name, number or avatar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, func(groups []advent.Group, groupID string) ([]advent.Group, error) {
				gi := advent.FindGroup(groups, groupID)
				for _, m := range groups[gi].Members {
					if m.ID != args[0] {
						continue
					}
					name, number := m.Name, m.Number
					if cmd.Flags().Changed("name") {
						name = flagName
					}
					if cmd.Flags().Changed("number") {
						number = flagNumber
					}
					return advent.EditMember(groups, groupID, m.ID, name, number, flagEditAvatar)
				}
				return nil, fmt.Errorf("%w: %s", advent.ErrMemberNotFound, args[0])
			})
		},
	}
	editCmd.Flags().StringVar(&flagName, "name", "", "New name")
	editCmd.Flags().StringVar(&flagNumber, "number", "", "New ticket number")
	editCmd.Flags().StringVar(&flagEditAvatar, "avatar", "", "New avatar glyph")

	remove := &cobra.Command{
		Use:   "remove <member-id>",
		Short: "Remove a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, func(groups []advent.Group, groupID string) ([]advent.Group, error) {
				return advent.RemoveMember(groups, groupID, args[0])
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, func(groups []advent.Group, groupID string) ([]advent.Group, error) {
				return advent.RenameGroup(groups, groupID, args[0])
			})
		},
	}

	cmd.AddCommand(list, add, editCmd, remove, rename)
	return cmd
}

// resolveGroup returns groupID, or the first group's ID when empty
func resolveGroup(state *storage.State, groupID string) (string, error) {
	if groupID == "" {
		if len(state.Groups) == 0 {
			return "", advent.ErrGroupNotFound
		}
		return state.Groups[0].ID, nil
	}
	if advent.FindGroup(state.Groups, groupID) < 0 {
		return "", fmt.Errorf("%w: %s", advent.ErrGroupNotFound, groupID)
	}
	return groupID, nil
}
