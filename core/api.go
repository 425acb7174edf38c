package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/metahub-labs/metahub-go/internal/builders"
	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
	"github.com/metahub-labs/metahub-go/internal/repo"
	"github.com/metahub-labs/metahub-go/internal/service/entities"
)

const maxBodyBytes = 8 << 20

type coreAPI struct {
	logger *slog.Logger
	svc    *entities.Service
	reg    *marshal.Registry
}

func newCoreAPI(logger *slog.Logger, svc *entities.Service, reg *marshal.Registry) *coreAPI {
	return &coreAPI{
		logger: logger,
		svc:    svc,
		reg:    reg,
	}
}

func (api *coreAPI) register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/projects", api.handleCreateProject)
	mux.HandleFunc("GET /api/v1/projects", api.handleListProjects)
	mux.HandleFunc("GET /api/v1/projects/{id}", api.handleGetProject)
	mux.HandleFunc("PUT /api/v1/projects/{id}", api.handleUpdateProject)
	mux.HandleFunc("DELETE /api/v1/projects/{id}", api.handleDeleteProject)

	mux.HandleFunc("POST /api/v1/projects/{project}/artifacts", api.handleCreateArtifact)
	mux.HandleFunc("GET /api/v1/projects/{project}/artifacts", api.handleListArtifacts)
	mux.HandleFunc("GET /api/v1/projects/{project}/artifacts/{id}", api.handleGetArtifact)
	mux.HandleFunc("PUT /api/v1/projects/{project}/artifacts/{id}", api.handleUpdateArtifact)
	mux.HandleFunc("DELETE /api/v1/projects/{project}/artifacts/{id}", api.handleDeleteArtifact)
	mux.HandleFunc("POST /api/v1/projects/{project}/artifacts/{id}/upload", api.handleArtifactUpload)
	mux.HandleFunc("GET /api/v1/projects/{project}/artifacts/{id}/download", api.handleArtifactDownload)

	mux.HandleFunc("POST /api/v1/projects/{project}/dataitems", api.handleCreateDataItem)
	mux.HandleFunc("GET /api/v1/projects/{project}/dataitems", api.handleListDataItems)
	mux.HandleFunc("GET /api/v1/projects/{project}/dataitems/{id}", api.handleGetDataItem)
	mux.HandleFunc("PUT /api/v1/projects/{project}/dataitems/{id}", api.handleUpdateDataItem)
	mux.HandleFunc("DELETE /api/v1/projects/{project}/dataitems/{id}", api.handleDeleteDataItem)

	mux.HandleFunc("POST /api/v1/projects/{project}/functions", api.handleCreateFunction)
	mux.HandleFunc("GET /api/v1/projects/{project}/functions", api.handleListFunctions)
	mux.HandleFunc("GET /api/v1/projects/{project}/functions/{id}", api.handleGetFunction)
	mux.HandleFunc("PUT /api/v1/projects/{project}/functions/{id}", api.handleUpdateFunction)
	mux.HandleFunc("DELETE /api/v1/projects/{project}/functions/{id}", api.handleDeleteFunction)

	mux.HandleFunc("POST /api/v1/projects/{project}/workflows", api.handleCreateWorkflow)
	mux.HandleFunc("GET /api/v1/projects/{project}/workflows", api.handleListWorkflows)
	mux.HandleFunc("GET /api/v1/projects/{project}/workflows/{id}", api.handleGetWorkflow)
	mux.HandleFunc("PUT /api/v1/projects/{project}/workflows/{id}", api.handleUpdateWorkflow)
	mux.HandleFunc("DELETE /api/v1/projects/{project}/workflows/{id}", api.handleDeleteWorkflow)

	mux.HandleFunc("POST /api/v1/projects/{project}/runs", api.handleCreateRun)
	mux.HandleFunc("GET /api/v1/projects/{project}/runs", api.handleListRuns)
	mux.HandleFunc("GET /api/v1/projects/{project}/runs/{id}", api.handleGetRun)
	mux.HandleFunc("PUT /api/v1/projects/{project}/runs/{id}", api.handleUpdateRun)
	mux.HandleFunc("DELETE /api/v1/projects/{project}/runs/{id}", api.handleDeleteRun)

	mux.HandleFunc("POST /api/v1/projects/{project}/logs", api.handleCreateLog)
	mux.HandleFunc("GET /api/v1/projects/{project}/logs", api.handleListLogs)
	mux.HandleFunc("GET /api/v1/projects/{project}/logs/{id}", api.handleGetLog)
	mux.HandleFunc("PUT /api/v1/projects/{project}/logs/{id}", api.handleUpdateLog)
	mux.HandleFunc("DELETE /api/v1/projects/{project}/logs/{id}", api.handleDeleteLog)
}

// projects

func (api *coreAPI) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.ProjectDTO](api, w, r, builders.TagProject)
	if !ok {
		return
	}
	out, err := api.svc.CreateProject(r.Context(), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusCreated, builders.TagProject, out)
}

func (api *coreAPI) handleListProjects(w http.ResponseWriter, r *http.Request) {
	filter := repo.ProjectFilter{
		Name:  strings.TrimSpace(r.URL.Query().Get("name")),
		State: strings.TrimSpace(r.URL.Query().Get("state")),
		Limit: parseIntQuery(r, "limit", 100),
	}
	out, err := api.svc.ListProjects(r.Context(), filter)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	records, err := encodeList(api.reg, builders.TagProject, out)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]any{"projects": records})
}

func (api *coreAPI) handleGetProject(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagProject, out)
}

func (api *coreAPI) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.ProjectDTO](api, w, r, builders.TagProject)
	if !ok {
		return
	}
	out, err := api.svc.UpdateProject(r.Context(), r.PathValue("id"), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagProject, out)
}

func (api *coreAPI) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := api.svc.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// artifacts

func (api *coreAPI) handleCreateArtifact(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.ArtifactDTO](api, w, r, builders.TagArtifact)
	if !ok {
		return
	}
	dto.Project = r.PathValue("project")
	out, err := api.svc.CreateArtifact(r.Context(), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusCreated, builders.TagArtifact, out)
}

func (api *coreAPI) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.ListArtifacts(r.Context(), entityFilter(r), parseBoolQuery(r, "embed"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	records, err := encodeList(api.reg, builders.TagArtifact, out)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]any{"artifacts": records})
}

func (api *coreAPI) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.GetArtifact(r.Context(), r.PathValue("project"), r.PathValue("id"), parseBoolQuery(r, "embed"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagArtifact, out)
}

func (api *coreAPI) handleUpdateArtifact(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.ArtifactDTO](api, w, r, builders.TagArtifact)
	if !ok {
		return
	}
	out, err := api.svc.UpdateArtifact(r.Context(), r.PathValue("project"), r.PathValue("id"), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagArtifact, out)
}

func (api *coreAPI) handleDeleteArtifact(w http.ResponseWriter, r *http.Request) {
	if err := api.svc.DeleteArtifact(r.Context(), r.PathValue("project"), r.PathValue("id")); err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *coreAPI) handleArtifactUpload(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		api.writeError(w, r, http.StatusBadRequest, "filename_required")
		return
	}
	url, err := api.svc.ArtifactUploadURL(r.Context(), r.PathValue("project"), r.PathValue("id"), filename)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]any{"url": url})
}

func (api *coreAPI) handleArtifactDownload(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		api.writeError(w, r, http.StatusBadRequest, "filename_required")
		return
	}
	url, err := api.svc.ArtifactDownloadURL(r.Context(), r.PathValue("project"), r.PathValue("id"), filename)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]any{"url": url})
}

// dataitems

func (api *coreAPI) handleCreateDataItem(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.DataItemDTO](api, w, r, builders.TagDataItem)
	if !ok {
		return
	}
	dto.Project = r.PathValue("project")
	out, err := api.svc.CreateDataItem(r.Context(), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusCreated, builders.TagDataItem, out)
}

func (api *coreAPI) handleListDataItems(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.ListDataItems(r.Context(), entityFilter(r), parseBoolQuery(r, "embed"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	records, err := encodeList(api.reg, builders.TagDataItem, out)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]any{"dataitems": records})
}

func (api *coreAPI) handleGetDataItem(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.GetDataItem(r.Context(), r.PathValue("project"), r.PathValue("id"), parseBoolQuery(r, "embed"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagDataItem, out)
}

func (api *coreAPI) handleUpdateDataItem(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.DataItemDTO](api, w, r, builders.TagDataItem)
	if !ok {
		return
	}
	out, err := api.svc.UpdateDataItem(r.Context(), r.PathValue("project"), r.PathValue("id"), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagDataItem, out)
}

func (api *coreAPI) handleDeleteDataItem(w http.ResponseWriter, r *http.Request) {
	if err := api.svc.DeleteDataItem(r.Context(), r.PathValue("project"), r.PathValue("id")); err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// functions

func (api *coreAPI) handleCreateFunction(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.FunctionDTO](api, w, r, builders.TagFunction)
	if !ok {
		return
	}
	dto.Project = r.PathValue("project")
	out, err := api.svc.CreateFunction(r.Context(), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusCreated, builders.TagFunction, out)
}

func (api *coreAPI) handleListFunctions(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.ListFunctions(r.Context(), entityFilter(r), parseBoolQuery(r, "embed"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	records, err := encodeList(api.reg, builders.TagFunction, out)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]any{"functions": records})
}

func (api *coreAPI) handleGetFunction(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.GetFunction(r.Context(), r.PathValue("project"), r.PathValue("id"), parseBoolQuery(r, "embed"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagFunction, out)
}

func (api *coreAPI) handleUpdateFunction(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.FunctionDTO](api, w, r, builders.TagFunction)
	if !ok {
		return
	}
	out, err := api.svc.UpdateFunction(r.Context(), r.PathValue("project"), r.PathValue("id"), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagFunction, out)
}

func (api *coreAPI) handleDeleteFunction(w http.ResponseWriter, r *http.Request) {
	if err := api.svc.DeleteFunction(r.Context(), r.PathValue("project"), r.PathValue("id")); err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// workflows

func (api *coreAPI) handleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.WorkflowDTO](api, w, r, builders.TagWorkflow)
	if !ok {
		return
	}
	dto.Project = r.PathValue("project")
	out, err := api.svc.CreateWorkflow(r.Context(), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusCreated, builders.TagWorkflow, out)
}

func (api *coreAPI) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.ListWorkflows(r.Context(), entityFilter(r), parseBoolQuery(r, "embed"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	records, err := encodeList(api.reg, builders.TagWorkflow, out)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]any{"workflows": records})
}

func (api *coreAPI) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.GetWorkflow(r.Context(), r.PathValue("project"), r.PathValue("id"), parseBoolQuery(r, "embed"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagWorkflow, out)
}

func (api *coreAPI) handleUpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.WorkflowDTO](api, w, r, builders.TagWorkflow)
	if !ok {
		return
	}
	out, err := api.svc.UpdateWorkflow(r.Context(), r.PathValue("project"), r.PathValue("id"), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagWorkflow, out)
}

func (api *coreAPI) handleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	if err := api.svc.DeleteWorkflow(r.Context(), r.PathValue("project"), r.PathValue("id")); err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// runs

func (api *coreAPI) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.RunDTO](api, w, r, builders.TagRun)
	if !ok {
		return
	}
	dto.Project = r.PathValue("project")
	out, err := api.svc.CreateRun(r.Context(), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusCreated, builders.TagRun, out)
}

func (api *coreAPI) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filter := repo.RunFilter{
		Project: r.PathValue("project"),
		Kind:    strings.TrimSpace(r.URL.Query().Get("kind")),
		Task:    strings.TrimSpace(r.URL.Query().Get("task")),
		State:   strings.TrimSpace(r.URL.Query().Get("state")),
		Limit:   parseIntQuery(r, "limit", 100),
	}
	out, err := api.svc.ListRuns(r.Context(), filter)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	records, err := encodeList(api.reg, builders.TagRun, out)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]any{"runs": records})
}

func (api *coreAPI) handleGetRun(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.GetRun(r.Context(), r.PathValue("project"), r.PathValue("id"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagRun, out)
}

func (api *coreAPI) handleUpdateRun(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.RunDTO](api, w, r, builders.TagRun)
	if !ok {
		return
	}
	out, err := api.svc.UpdateRun(r.Context(), r.PathValue("project"), r.PathValue("id"), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagRun, out)
}

func (api *coreAPI) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := api.svc.DeleteRun(r.Context(), r.PathValue("project"), r.PathValue("id")); err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// logs

func (api *coreAPI) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.LogDTO](api, w, r, builders.TagLog)
	if !ok {
		return
	}
	dto.Project = r.PathValue("project")
	out, err := api.svc.CreateLog(r.Context(), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusCreated, builders.TagLog, out)
}

func (api *coreAPI) handleListLogs(w http.ResponseWriter, r *http.Request) {
	filter := repo.LogFilter{
		Project: r.PathValue("project"),
		Run:     strings.TrimSpace(r.URL.Query().Get("run")),
		Limit:   parseIntQuery(r, "limit", 100),
	}
	out, err := api.svc.ListLogs(r.Context(), filter)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	records, err := encodeList(api.reg, builders.TagLog, out)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]any{"logs": records})
}

func (api *coreAPI) handleGetLog(w http.ResponseWriter, r *http.Request) {
	out, err := api.svc.GetLog(r.Context(), r.PathValue("project"), r.PathValue("id"))
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagLog, out)
}

func (api *coreAPI) handleUpdateLog(w http.ResponseWriter, r *http.Request) {
	dto, ok := decodePayload[*domain.LogDTO](api, w, r, builders.TagLog)
	if !ok {
		return
	}
	out, err := api.svc.UpdateLog(r.Context(), r.PathValue("project"), r.PathValue("id"), dto)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeEncoded(w, r, http.StatusOK, builders.TagLog, out)
}

func (api *coreAPI) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	if err := api.svc.DeleteLog(r.Context(), r.PathValue("project"), r.PathValue("id")); err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// helpers

func decodePayload[T any](api *coreAPI, w http.ResponseWriter, r *http.Request, tag string) (T, bool) {
	var zero T
	rec, err := readBody(r)
	if err != nil {
		api.writeError(w, r, http.StatusBadRequest, "invalid_json")
		return zero, false
	}
	dto, err := marshal.DecodeAs[T](api.reg, tag, rec)
	if err != nil {
		api.writeServiceError(w, r, err)
		return zero, false
	}
	return dto, true
}

func readBody(r *http.Request) (marshal.Record, error) {
	defer r.Body.Close()
	var rec marshal.Record
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func encodeList[T any](reg *marshal.Registry, tag string, items []T) ([]marshal.Record, error) {
	out := make([]marshal.Record, 0, len(items))
	for _, item := range items {
		rec, err := marshal.EncodeRecord(reg, tag, item)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func entityFilter(r *http.Request) repo.EntityFilter {
	return repo.EntityFilter{
		Project: r.PathValue("project"),
		Name:    strings.TrimSpace(r.URL.Query().Get("name")),
		Kind:    strings.TrimSpace(r.URL.Query().Get("kind")),
		State:   strings.TrimSpace(r.URL.Query().Get("state")),
		Limit:   parseIntQuery(r, "limit", 100),
	}
}

func (api *coreAPI) writeEncoded(w http.ResponseWriter, r *http.Request, status int, tag string, value any) {
	rec, err := marshal.EncodeRecord(api.reg, tag, value)
	if err != nil {
		api.writeServiceError(w, r, err)
		return
	}
	api.writeJSON(w, status, rec)
}

func (api *coreAPI) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var decodeErr *marshal.DecodeError
	var stateErr *domain.InvalidStateError

	switch {
	case errors.Is(err, repo.ErrNotFound):
		api.writeError(w, r, http.StatusNotFound, "not_found")
	case errors.Is(err, marshal.ErrUnknownFormat),
		errors.As(err, &decodeErr),
		errors.As(err, &stateErr):
		api.writeError(w, r, http.StatusBadRequest, "invalid_payload")
	default:
		api.logger.Error("request failed",
			"request_id", r.Header.Get("X-Request-Id"),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		api.writeError(w, r, http.StatusInternalServerError, "internal_error")
	}
}

func (api *coreAPI) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(body)
}

func (api *coreAPI) writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	api.writeJSON(w, status, map[string]any{
		"error":      code,
		"request_id": r.Header.Get("X-Request-Id"),
	})
}

func parseIntQuery(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolQuery(r *http.Request, key string) bool {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return false
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return parsed
}
