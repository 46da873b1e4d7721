package syncer

import (
	"context"
	stderrors "errors"

	"github.com/codemetry/codemetry/internal/db"
	"github.com/codemetry/codemetry/internal/gh"
)

// importVisitor mirrors every node of a fresh tree. Directory hashes are
// written at creation, so leaveTree has nothing to stamp.
type importVisitor struct {
	engine    *Engine
	tx        db.Store
	projectID uint
}

func (v *importVisitor) enterTree(_ context.Context, _ uint, _ *gh.Tree) error {
	return nil
}

func (v *importVisitor) visitBlob(ctx context.Context, dirID uint, entry gh.TreeEntry) error {
	file := &db.File{DirectoryID: dirID, Name: entry.Path, GitHash: entry.SHA}
	if err := v.tx.CreateFile(ctx, file); err != nil {
		return err
	}
	return v.engine.analyzeFile(ctx, v.tx, file.ID, entry.Path, entry.URL)
}

func (v *importVisitor) visitTree(ctx context.Context, dirID uint, entry gh.TreeEntry) (uint, bool, error) {
	name := entry.Path
	dir := &db.Directory{
		ProjectID: v.projectID,
		Name:      &name,
		ParentID:  &dirID,
		GitHash:   entry.SHA,
	}
	if err := v.tx.CreateDirectory(ctx, dir); err != nil {
		return 0, false, err
	}
	return dir.ID, true, nil
}

func (v *importVisitor) leaveTree(_ context.Context, _ uint, _ *gh.Tree) error {
	return nil
}

// updateVisitor reconciles an existing mirror against a changed tree:
// local-only entries are removed, new entries created, hash-equal
// subtrees and blobs skipped, and changed blobs re-analyzed. Directory
// hashes are stamped in leaveTree, after the subtree reconciles.
type updateVisitor struct {
	engine    *Engine
	tx        db.Store
	projectID uint
}

func (v *updateVisitor) enterTree(ctx context.Context, dirID uint, tree *gh.Tree) error {
	upstreamDirs := make(map[string]bool)
	upstreamFiles := make(map[string]bool)
	for _, entry := range tree.Entries {
		switch {
		case entry.IsTree():
			upstreamDirs[entry.Path] = true
		case entry.IsBlob():
			upstreamFiles[entry.Path] = true
		}
	}

	dirs, err := v.tx.ListDirectories(ctx, dirID)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if dir.Name != nil && !upstreamDirs[*dir.Name] {
			if err := v.tx.DeleteDirectory(ctx, dir.ID); err != nil {
				return err
			}
		}
	}

	files, err := v.tx.ListFiles(ctx, dirID)
	if err != nil {
		return err
	}
	for _, file := range files {
		if !upstreamFiles[file.Name] {
			if err := v.tx.DeleteFile(ctx, file.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *updateVisitor) visitBlob(ctx context.Context, dirID uint, entry gh.TreeEntry) error {
	file, err := v.tx.GetFile(ctx, dirID, entry.Path)
	if err != nil {
		if !stderrors.Is(err, db.ErrRecordNotFound) {
			return err
		}
		file = &db.File{DirectoryID: dirID, Name: entry.Path, GitHash: entry.SHA}
		if err := v.tx.CreateFile(ctx, file); err != nil {
			return err
		}
		return v.engine.analyzeFile(ctx, v.tx, file.ID, entry.Path, entry.URL)
	}

	if file.GitHash == entry.SHA {
		return nil
	}

	if err := v.engine.analyzeFile(ctx, v.tx, file.ID, entry.Path, entry.URL); err != nil {
		return err
	}
	return v.tx.UpdateFileHash(ctx, file.ID, entry.SHA)
}

func (v *updateVisitor) visitTree(ctx context.Context, dirID uint, entry gh.TreeEntry) (uint, bool, error) {
	dir, err := v.tx.GetDirectory(ctx, dirID, entry.Path)
	if err != nil {
		if !stderrors.Is(err, db.ErrRecordNotFound) {
			return 0, false, err
		}
		name := entry.Path
		// Hash is stamped in leaveTree once the subtree is mirrored
		dir = &db.Directory{
			ProjectID: v.projectID,
			Name:      &name,
			ParentID:  &dirID,
		}
		if err := v.tx.CreateDirectory(ctx, dir); err != nil {
			return 0, false, err
		}
		return dir.ID, true, nil
	}

	if dir.GitHash == entry.SHA {
		return dir.ID, false, nil
	}
	return dir.ID, true, nil
}

func (v *updateVisitor) leaveTree(ctx context.Context, dirID uint, tree *gh.Tree) error {
	return v.tx.UpdateDirectoryHash(ctx, dirID, tree.SHA)
}
