// Package ioserve exposes the HTTP API: asset collection jobs, task
// status, repo listings, recon and the file depot setting. Collection
// and recon run as background goroutines tracked in a task store; the
// pipeline itself stays synchronous and knows nothing about tasks.
package ioserve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rbhughes/purr-petra/pkg/petra"
	"github.com/rbhughes/purr-petra/pkg/recipe"
)

// Reconer is the repo discovery collaborator.
type Reconer interface {
	Recon(ctx context.Context, root string) ([]*petra.Repo, error)
}

// Server wires the HTTP routes to the pipeline collaborators.
type Server struct {
	store     petra.RepoStore
	collector petra.Collector
	reconer   Reconer
	tasks     petra.TaskStore

	// depot overrides the store's file depot setting when non-empty.
	depot string

	mux *http.ServeMux
}

// New assembles the API server.
func New(
	store petra.RepoStore,
	collector petra.Collector,
	reconer Reconer,
	tasks petra.TaskStore,
	depot string,
) *Server {
	s := &Server{
		store:     store,
		collector: collector,
		reconer:   reconer,
		tasks:     tasks,
		depot:     depot,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /purr/petra/asset/{repo_id}/{asset}", s.postAsset)
	s.mux.HandleFunc("GET /purr/petra/asset/status/{task_id}", s.getAssetStatus)
	s.mux.HandleFunc("GET /purr/petra/repos", s.getRepos)
	s.mux.HandleFunc("GET /purr/petra/repos/{repo_id}", s.getRepo)
	s.mux.HandleFunc("POST /purr/petra/repos/recon", s.postRecon)
	s.mux.HandleFunc("GET /purr/petra/file_depot", s.getFileDepot)
	s.mux.HandleFunc("POST /purr/petra/file_depot", s.postFileDepot)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type apiError struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, apiError{Detail: fmt.Sprintf(format, args...)})
}

// postAsset accepts an asset collection job and returns 202 with a
// task id immediately; the pipeline runs in the background.
func (s *Server) postAsset(w http.ResponseWriter, r *http.Request) {
	repoID := r.PathValue("repo_id")
	asset := r.PathValue("asset")

	if _, err := recipe.Load(asset); err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset: %s", asset)
		return
	}

	repo, err := s.store.GetRepo(r.Context(), repoID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid repo_id: %s", repoID)
		return
	}

	depot, err := s.exportDepot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "file depot: %v", err)
		return
	}

	uwis := petra.ParseUWIs(r.URL.Query().Get("uwi_query"))
	outPath := filepath.Join(depot, petra.ExportFilename(repoID, asset))

	task := &petra.Task{
		ID:      uuid.NewString(),
		RepoID:  repoID,
		Asset:   asset,
		UWIs:    uwis,
		Status:  petra.TaskPending,
		Message: "export file (pending): " + outPath,
	}
	s.tasks.Put(task)

	go s.runCollection(task.ID, repo.Conn, asset, uwis, outPath)

	writeJSON(w, http.StatusAccepted, task)
}

// runCollection drives one background collection. The request context
// is gone by the time this runs, so it uses its own.
func (s *Server) runCollection(
	taskID string,
	conn petra.ConnParams,
	asset string,
	uwis []string,
	outPath string,
) {
	s.tasks.SetStatus(taskID, petra.TaskInProgress, "")

	sum, err := s.collector.Collect(context.Background(), conn, asset, uwis, outPath)
	if err != nil {
		slog.Error("collection task failed", "task_id", taskID, "error", err)
		s.tasks.SetStatus(taskID, petra.TaskFailed, err.Error())
		return
	}
	if sum.NoHits {
		s.tasks.SetStatus(taskID, petra.TaskCompleted, "query returned no results")
		return
	}
	s.tasks.SetStatus(taskID, petra.TaskCompleted,
		fmt.Sprintf("exported %d docs to: %s", sum.DocsWritten, sum.OutputPath))
}

func (s *Server) getAssetStatus(w http.ResponseWriter, r *http.Request) {
	task, ok := s.tasks.Get(r.PathValue("task_id"))
	if !ok {
		writeError(w, http.StatusNotFound, "asset collection task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) getRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := s.store.ListRepos(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	if repos == nil {
		repos = []*petra.Repo{}
	}
	writeJSON(w, http.StatusOK, repos)
}

func (s *Server) getRepo(w http.ResponseWriter, r *http.Request) {
	repoID := r.PathValue("repo_id")
	repo, err := s.store.GetRepo(r.Context(), repoID)
	if err != nil {
		writeError(w, http.StatusNotFound, "repo with id %s not found", repoID)
		return
	}
	writeJSON(w, http.StatusOK, repo)
}

// postRecon accepts a network scan job and returns 202 with a task id.
func (s *Server) postRecon(w http.ResponseWriter, r *http.Request) {
	root := r.URL.Query().Get("recon_root")
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		writeError(w, http.StatusBadRequest, "invalid directory: %s", root)
		return
	}

	task := &petra.Task{
		ID:      uuid.NewString(),
		Status:  petra.TaskPending,
		Message: "recon root: " + root,
	}
	s.tasks.Put(task)

	go func() {
		s.tasks.SetStatus(task.ID, petra.TaskInProgress, "")
		repos, err := s.reconer.Recon(context.Background(), root)
		if err != nil {
			slog.Error("recon task failed", "task_id", task.ID, "error", err)
			s.tasks.SetStatus(task.ID, petra.TaskFailed, err.Error())
			return
		}
		s.tasks.SetStatus(task.ID, petra.TaskCompleted,
			fmt.Sprintf("registered %d repos", len(repos)))
	}()

	writeJSON(w, http.StatusAccepted, task)
}

func (s *Server) getFileDepot(w http.ResponseWriter, r *http.Request) {
	depot, err := s.exportDepot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file_depot": depot})
}

func (s *Server) postFileDepot(w http.ResponseWriter, r *http.Request) {
	depot := r.URL.Query().Get("file_depot")
	info, err := os.Stat(depot)
	if err != nil || !info.IsDir() {
		writeError(w, http.StatusBadRequest, "invalid directory: %s", depot)
		return
	}
	if err := s.store.SetFileDepot(r.Context(), depot); err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file_depot": depot})
}

// exportDepot resolves where export files land: the config override
// when set, else the store setting, else the current directory.
func (s *Server) exportDepot(ctx context.Context) (string, error) {
	if s.depot != "" {
		return s.depot, nil
	}
	depot, err := s.store.FileDepot(ctx)
	if err != nil {
		return "", err
	}
	if depot == "" {
		return ".", nil
	}
	return depot, nil
}
