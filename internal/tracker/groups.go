package tracker

import (
	"errors"
	"fmt"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/share"
)

// ErrInvalidShare is returned by Import for fragments that cannot be decoded
var ErrInvalidShare = errors.New("invalid share data")

// Groups returns the registered groups
func (t *Tracker) Groups() ([]advent.Group, error) {
	state, err := t.load()
	if err != nil {
		return nil, err
	}
	return state.Groups, nil
}

// AddMember registers a ticket in a group and returns the new member
func (t *Tracker) AddMember(groupID, name, number, avatar string) (advent.Member, error) {
	m, err := advent.NewMember(name, number, avatar)
	if err != nil {
		return advent.Member{}, err
	}
	_, err = t.update(func(groups []advent.Group) ([]advent.Group, error) {
		return advent.AddMember(groups, groupID, m)
	})
	if err != nil {
		return advent.Member{}, err
	}
	return m, nil
}

// EditMember updates a registered ticket
func (t *Tracker) EditMember(groupID, memberID, name, number, avatar string) ([]advent.Group, error) {
	return t.update(func(groups []advent.Group) ([]advent.Group, error) {
		return advent.EditMember(groups, groupID, memberID, name, number, avatar)
	})
}

// RemoveMember deletes a registered ticket
func (t *Tracker) RemoveMember(groupID, memberID string) ([]advent.Group, error) {
	return t.update(func(groups []advent.Group) ([]advent.Group, error) {
		return advent.RemoveMember(groups, groupID, memberID)
	})
}

// RenameGroup changes a group's name
func (t *Tracker) RenameGroup(groupID, name string) ([]advent.Group, error) {
	return t.update(func(groups []advent.Group) ([]advent.Group, error) {
		return advent.RenameGroup(groups, groupID, name)
	})
}

// ShareURL returns the share link for a group
func (t *Tracker) ShareURL(groupID, base string) (string, error) {
	groups, err := t.Groups()
	if err != nil {
		return "", err
	}
	i := advent.FindGroup(groups, groupID)
	if i < 0 {
		return "", advent.ErrGroupNotFound
	}
	return share.URL(base, groups[i]), nil
}

// Import replaces the registered groups with the ones in a share fragment
func (t *Tracker) Import(fragment string) ([]advent.Group, error) {
	imported, err := share.Decode(fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShare, err)
	}
	return t.update(func([]advent.Group) ([]advent.Group, error) {
		return imported, nil
	})
}
