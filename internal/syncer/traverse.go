package syncer

import (
	"context"

	"github.com/codemetry/codemetry/internal/errors"
	"github.com/codemetry/codemetry/internal/gh"
)

// nodeVisitor receives tree nodes during a pre-order traversal. Subtree
// listings are fetched lazily through each entry's URL, so a visitor that
// declines to descend also avoids the provider round-trip.
type nodeVisitor interface {
	// enterTree is called with a level's full listing before any of its
	// entries are visited.
	enterTree(ctx context.Context, dirID uint, tree *gh.Tree) error

	// visitBlob is called for a file entry of the current level
	visitBlob(ctx context.Context, dirID uint, entry gh.TreeEntry) error

	// visitTree is called for a directory entry. It returns the local
	// directory ID for the entry and whether to descend into it.
	visitTree(ctx context.Context, dirID uint, entry gh.TreeEntry) (uint, bool, error)

	// leaveTree is called after a level's entries, and any descended
	// subtrees, are fully visited.
	leaveTree(ctx context.Context, dirID uint, tree *gh.Tree) error
}

// traverse walks a remote tree depth-first, driving the visitor. dirID is
// the local directory mirroring the given tree level.
func (e *Engine) traverse(ctx context.Context, dirID uint, tree *gh.Tree, v nodeVisitor) error {
	if err := v.enterTree(ctx, dirID, tree); err != nil {
		return err
	}

	for _, entry := range tree.Entries {
		switch {
		case entry.IsBlob():
			if err := v.visitBlob(ctx, dirID, entry); err != nil {
				return err
			}
		case entry.IsTree():
			childID, descend, err := v.visitTree(ctx, dirID, entry)
			if err != nil {
				return err
			}
			if !descend {
				continue
			}
			subtree, err := e.client.GetTree(ctx, entry.URL)
			if err != nil {
				return errors.WrapWithContext(err, "fetch subtree "+entry.Path)
			}
			if err := e.traverse(ctx, childID, subtree, v); err != nil {
				return err
			}
		default:
			// Submodule commits and symlinks are not mirrored
		}
	}

	return v.leaveTree(ctx, dirID, tree)
}
