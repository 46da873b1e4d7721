package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/codemetry/codemetry/internal/db"
	"github.com/codemetry/codemetry/internal/errors"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// treeListing is a directory's contents as shown to the browser
type treeListing struct {
	Directory   *db.Directory   `json:"directory"`
	Directories []*db.Directory `json:"directories"`
	Files       []*db.File      `json:"files"`
}

// fileMetrics is a file together with its analysis results. Metric
// pointers are nil for files that were never analyzed.
type fileMetrics struct {
	File     *db.File            `json:"file"`
	Raw      *db.RawMetrics      `json:"raw,omitempty"`
	Halstead *db.HalsteadMetrics `json:"halstead,omitempty"`
}

// projectFromRequest resolves the projectID route parameter to a project
// owned by the authenticated user.
func (h *Handler) projectFromRequest(r *http.Request) (*db.Project, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		return nil, errors.ErrProjectNotFound
	}

	project, err := h.store.GetProject(r.Context(), uint(id))
	if err != nil {
		if stderrors.Is(err, db.ErrRecordNotFound) {
			return nil, errors.ErrProjectNotFound
		}
		return nil, err
	}

	// Ownership is checked, not just existence, so project IDs cannot be
	// enumerated across accounts
	if project.UserID != authedUserID(r.Context()) {
		return nil, errors.ErrProjectNotFound
	}
	return project, nil
}

// ListProjects returns the authenticated user's projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context(), authedUserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, projects)
}

// CreateProject creates a project for the authenticated user
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "project name is required"})
		return
	}

	project := &db.Project{
		UserID:      authedUserID(r.Context()),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.store.CreateProject(r.Context(), project); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, project)
}

// GetProject returns a single project
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, project)
}

// DeleteProject removes a project and its mirrored tree
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.store.DeleteProject(r.Context(), project.ID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

// GetTree returns the root directory listing of a project's mirror
func (h *Handler) GetTree(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	root, err := h.store.GetRootDirectory(r.Context(), project.ID)
	if err != nil {
		if stderrors.Is(err, db.ErrRecordNotFound) {
			h.writeError(w, errors.ErrRootDirectoryMissing)
			return
		}
		h.writeError(w, err)
		return
	}

	h.listDirectory(w, r, root)
}

// GetDirectory returns a directory listing inside a project's mirror
func (h *Handler) GetDirectory(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	dir, err := h.directoryFromRequest(r, project)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.listDirectory(w, r, dir)
}

// GetFileMetrics returns a file with its raw and Halstead metrics
func (h *Handler) GetFileMetrics(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	file, err := h.fileFromRequest(r, project)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := fileMetrics{File: file}
	if raw, err := h.store.GetRawMetrics(r.Context(), file.ID); err == nil {
		out.Raw = raw
	} else if !stderrors.Is(err, db.ErrRecordNotFound) {
		h.writeError(w, err)
		return
	}
	if halstead, err := h.store.GetHalsteadMetrics(r.Context(), file.ID); err == nil {
		out.Halstead = halstead
	} else if !stderrors.Is(err, db.ErrRecordNotFound) {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out)
}

// GetFileGraphs returns a file's control-flow graph renderings
func (h *Handler) GetFileGraphs(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	file, err := h.fileFromRequest(r, project)
	if err != nil {
		h.writeError(w, err)
		return
	}

	graphs, err := h.store.ListGraphVisualizations(r.Context(), file.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, graphs)
}

// listDirectory sends a directory with its children
func (h *Handler) listDirectory(w http.ResponseWriter, r *http.Request, dir *db.Directory) {
	dirs, err := h.store.ListDirectories(r.Context(), dir.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	files, err := h.store.ListFiles(r.Context(), dir.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, treeListing{Directory: dir, Directories: dirs, Files: files})
}

// directoryFromRequest resolves the directoryID route parameter within
// the given project.
func (h *Handler) directoryFromRequest(r *http.Request, project *db.Project) (*db.Directory, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "directoryID"), 10, 64)
	if err != nil {
		return nil, db.ErrRecordNotFound
	}

	dir, err := h.store.GetDirectoryByID(r.Context(), uint(id))
	if err != nil {
		return nil, err
	}
	// Project scoping keeps directory IDs from leaking across projects
	if dir.ProjectID != project.ID {
		return nil, db.ErrRecordNotFound
	}
	return dir, nil
}

// fileFromRequest resolves the fileID route parameter within the project
func (h *Handler) fileFromRequest(r *http.Request, project *db.Project) (*db.File, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "fileID"), 10, 64)
	if err != nil {
		return nil, db.ErrRecordNotFound
	}

	file, err := h.store.GetFileByID(r.Context(), uint(id))
	if err != nil {
		return nil, err
	}

	dir, err := h.store.GetDirectoryByID(r.Context(), file.DirectoryID)
	if err != nil {
		return nil, err
	}
	if dir.ProjectID != project.ID {
		return nil, db.ErrRecordNotFound
	}
	return file, nil
}
