// Package syncer implements repository tree synchronization: mirroring a
// remote content tree into directory and file rows and extracting static
// analysis metrics for eligible files.
//
// Synchronization runs are serialized per project and each run executes
// inside a single database transaction, so a provider failure mid-run
// leaves the mirror exactly as it was.
package syncer

import (
	"context"
	stderrors "errors"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/codemetry/codemetry/internal/analysis"
	"github.com/codemetry/codemetry/internal/db"
	"github.com/codemetry/codemetry/internal/decode"
	"github.com/codemetry/codemetry/internal/errors"
	"github.com/codemetry/codemetry/internal/gh"
	"github.com/codemetry/codemetry/internal/logging"
)

// Engine drives tree synchronization runs
type Engine struct {
	client   gh.Client
	store    db.Store
	adapters *analysis.Adapters
	log      *logrus.Entry
	locks    *lockTable
}

// New creates a synchronization engine
func New(client gh.Client, store db.Store, adapters *analysis.Adapters, logger *logrus.Logger) *Engine {
	if adapters == nil {
		adapters = analysis.DefaultAdapters()
	}
	return &Engine{
		client:   client,
		store:    store,
		adapters: adapters,
		log:      logging.WithComponent(logger, "syncer"),
		locks:    newLockTable(),
	}
}

// ImportTree mirrors a remote tree into a project that has no root
// directory yet. The whole import runs in one transaction.
func (e *Engine) ImportTree(ctx context.Context, treeURL string, projectID uint) error {
	release, err := e.locks.acquire(projectID)
	if err != nil {
		return err
	}
	defer release()

	log := e.log.WithField(logging.FieldProjectID, projectID)

	tree, err := e.client.GetTree(ctx, treeURL)
	if err != nil {
		return errors.WrapWithContext(err, "fetch root tree")
	}

	err = e.store.WithTx(ctx, func(tx db.Store) error {
		_, err := tx.GetRootDirectory(ctx, projectID)
		if err == nil {
			return errors.ErrRootDirectoryExists
		}
		if !stderrors.Is(err, db.ErrRecordNotFound) {
			return err
		}

		root := &db.Directory{ProjectID: projectID, GitHash: tree.SHA}
		if err := tx.CreateDirectory(ctx, root); err != nil {
			return err
		}

		v := &importVisitor{engine: e, tx: tx, projectID: projectID}
		if err := e.traverse(ctx, root.ID, tree, v); err != nil {
			return err
		}

		return stampSynced(ctx, tx, projectID)
	})
	if err != nil {
		return err
	}

	log.WithField(logging.FieldSHA, tree.SHA).Info("tree imported")
	return nil
}

// UpdateTree reconciles a project's mirrored tree against the remote
// tree. An unchanged root hash short-circuits the whole run; otherwise
// only changed subtrees are descended into and only changed blobs are
// re-analyzed. Local entries absent upstream are removed.
func (e *Engine) UpdateTree(ctx context.Context, treeURL string, projectID uint) error {
	release, err := e.locks.acquire(projectID)
	if err != nil {
		return err
	}
	defer release()

	log := e.log.WithField(logging.FieldProjectID, projectID)

	tree, err := e.client.GetTree(ctx, treeURL)
	if err != nil {
		return errors.WrapWithContext(err, "fetch root tree")
	}

	changed := false
	err = e.store.WithTx(ctx, func(tx db.Store) error {
		root, err := tx.GetRootDirectory(ctx, projectID)
		if err != nil {
			if stderrors.Is(err, db.ErrRecordNotFound) {
				return errors.ErrRootDirectoryMissing
			}
			return err
		}

		if root.GitHash == tree.SHA {
			return nil
		}
		changed = true

		v := &updateVisitor{engine: e, tx: tx, projectID: projectID}
		if err := e.traverse(ctx, root.ID, tree, v); err != nil {
			return err
		}

		return stampSynced(ctx, tx, projectID)
	})
	if err != nil {
		return err
	}

	if changed {
		log.WithField(logging.FieldSHA, tree.SHA).Info("tree updated")
	} else {
		log.WithField(logging.FieldSHA, tree.SHA).Debug("tree unchanged, skipping update")
	}
	return nil
}

// ResetWebhook disconnects a project's webhook and drops its mirrored
// tree, returning the project to its pre-import state.
func (e *Engine) ResetWebhook(ctx context.Context, projectID uint) error {
	release, err := e.locks.acquire(projectID)
	if err != nil {
		return err
	}
	defer release()

	err = e.store.WithTx(ctx, func(tx db.Store) error {
		project, err := tx.GetProject(ctx, projectID)
		if err != nil {
			if stderrors.Is(err, db.ErrRecordNotFound) {
				return errors.ErrProjectNotFound
			}
			return err
		}
		if project.HookID == nil {
			return errors.ErrWebhookNotConnected
		}

		root, err := tx.GetRootDirectory(ctx, projectID)
		if err == nil {
			if err := tx.DeleteDirectory(ctx, root.ID); err != nil {
				return err
			}
		} else if !stderrors.Is(err, db.ErrRecordNotFound) {
			return err
		}

		project.HookID = nil
		project.LastSyncedAt = nil
		return tx.UpdateProject(ctx, project)
	})
	if err != nil {
		return err
	}

	e.log.WithField(logging.FieldProjectID, projectID).Info("webhook reset")
	return nil
}

// stampSynced records the completion time of a successful run
func stampSynced(ctx context.Context, tx db.Store, projectID uint) error {
	project, err := tx.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	project.LastSyncedAt = &now
	return tx.UpdateProject(ctx, project)
}

// analyzeFile fetches, decodes and analyzes a blob, replacing the file's
// metric rows. Files the path filter rejects are skipped entirely. A
// failing adapter only loses that adapter's rows for this file; any rows
// from a previous revision are deleted so stale results cannot survive
// under the new blob hash. Provider and decoding failures abort the run.
func (e *Engine) analyzeFile(ctx context.Context, tx db.Store, fileID uint, path, blobURL string) error {
	if !e.adapters.Supports(path) {
		return nil
	}

	blob, err := e.client.GetBlob(ctx, blobURL)
	if err != nil {
		return errors.WrapWithContext(err, "fetch blob "+path)
	}
	source, err := decode.Content(blob.Content, blob.Encoding)
	if err != nil {
		return err
	}

	log := e.log.WithField(logging.FieldPath, path)

	if raw, err := e.adapters.Raw(path, source); err != nil {
		log.WithError(&errors.AnalysisError{Analyzer: "raw", Path: path, Err: err}).
			Warn("dropping raw metrics")
		if err := tx.DeleteRawMetrics(ctx, fileID); err != nil {
			return err
		}
	} else if err := tx.ReplaceRawMetrics(ctx, &db.RawMetrics{
		FileID:   fileID,
		LOC:      raw.LOC,
		LLOC:     raw.LLOC,
		PLOC:     raw.PLOC,
		Comments: raw.Comments,
		Blanks:   raw.Blanks,
	}); err != nil {
		return err
	}

	if halstead, err := e.adapters.Halstead(path, source); err != nil {
		log.WithError(&errors.AnalysisError{Analyzer: "halstead", Path: path, Err: err}).
			Warn("dropping halstead metrics")
		if err := tx.DeleteHalsteadMetrics(ctx, fileID); err != nil {
			return err
		}
	} else if err := tx.ReplaceHalsteadMetrics(ctx, &db.HalsteadMetrics{
		FileID:          fileID,
		UniqueOperators: halstead.UniqueOperators,
		UniqueOperands:  halstead.UniqueOperands,
		TotalOperators:  halstead.TotalOperators,
		TotalOperands:   halstead.TotalOperands,
	}); err != nil {
		return err
	}

	if cfg, err := e.adapters.CFG(path, source); err != nil {
		log.WithError(&errors.AnalysisError{Analyzer: "cfg", Path: path, Err: err}).
			Warn("dropping control-flow graphs")
		if err := tx.DeleteGraphVisualizations(ctx, fileID); err != nil {
			return err
		}
	} else if err := tx.ReplaceGraphVisualizations(ctx, fileID, graphRows(cfg)); err != nil {
		return err
	}

	return nil
}

// graphRows converts a CFG result to rows in deterministic order
func graphRows(cfg analysis.CFGResult) []*db.GraphVisualization {
	names := make([]string, 0, len(cfg))
	for name := range cfg {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]*db.GraphVisualization, 0, len(names))
	for _, name := range names {
		rows = append(rows, &db.GraphVisualization{
			GraphType:    db.GraphTypeCFG,
			FunctionName: name,
			DOT:          cfg[name],
		})
	}
	return rows
}
