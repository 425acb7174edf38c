package entities

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/metahub-labs/metahub-go/internal/builders"
	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
	"github.com/metahub-labs/metahub-go/internal/repo"
	"github.com/metahub-labs/metahub-go/internal/storage/objectstore"
)

type stubArtifactRepo struct {
	byID    map[string]domain.Artifact
	created []domain.Artifact
	updated []domain.Artifact
}

func newStubArtifactRepo() *stubArtifactRepo {
	return &stubArtifactRepo{byID: map[string]domain.Artifact{}}
}

func (r *stubArtifactRepo) Create(ctx context.Context, artifact domain.Artifact) error {
	r.created = append(r.created, artifact)
	r.byID[artifact.ID] = artifact
	return nil
}

func (r *stubArtifactRepo) Get(ctx context.Context, project, id string) (domain.Artifact, error) {
	artifact, ok := r.byID[id]
	if !ok || artifact.Project != project {
		return domain.Artifact{}, repo.ErrNotFound
	}
	return artifact, nil
}

func (r *stubArtifactRepo) List(ctx context.Context, filter repo.EntityFilter) ([]domain.Artifact, error) {
	out := make([]domain.Artifact, 0)
	for _, artifact := range r.byID {
		if artifact.Project == filter.Project {
			out = append(out, artifact)
		}
	}
	return out, nil
}

func (r *stubArtifactRepo) Update(ctx context.Context, artifact domain.Artifact) error {
	if _, ok := r.byID[artifact.ID]; !ok {
		return repo.ErrNotFound
	}
	r.updated = append(r.updated, artifact)
	r.byID[artifact.ID] = artifact
	return nil
}

func (r *stubArtifactRepo) Delete(ctx context.Context, project, id string) error {
	if _, ok := r.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubProjectRepo struct {
	byID map[string]domain.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: map[string]domain.Project{}}
}

func (r *stubProjectRepo) Create(ctx context.Context, project domain.Project) error {
	r.byID[project.ID] = project
	return nil
}

func (r *stubProjectRepo) Get(ctx context.Context, id string) (domain.Project, error) {
	project, ok := r.byID[id]
	if !ok {
		return domain.Project{}, repo.ErrNotFound
	}
	return project, nil
}

func (r *stubProjectRepo) List(ctx context.Context, filter repo.ProjectFilter) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(r.byID))
	for _, project := range r.byID {
		out = append(out, project)
	}
	return out, nil
}

func (r *stubProjectRepo) Update(ctx context.Context, project domain.Project) error {
	if _, ok := r.byID[project.ID]; !ok {
		return repo.ErrNotFound
	}
	r.byID[project.ID] = project
	return nil
}

func (r *stubProjectRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type emptyFunctionRepo struct{}

func (emptyFunctionRepo) Create(ctx context.Context, fn domain.Function) error { return nil }
func (emptyFunctionRepo) Get(ctx context.Context, project, id string) (domain.Function, error) {
	return domain.Function{}, repo.ErrNotFound
}
func (emptyFunctionRepo) List(ctx context.Context, filter repo.EntityFilter) ([]domain.Function, error) {
	return nil, nil
}
func (emptyFunctionRepo) Update(ctx context.Context, fn domain.Function) error { return nil }
func (emptyFunctionRepo) Delete(ctx context.Context, project, id string) error { return nil }

type emptyWorkflowRepo struct{}

func (emptyWorkflowRepo) Create(ctx context.Context, w domain.Workflow) error { return nil }
func (emptyWorkflowRepo) Get(ctx context.Context, project, id string) (domain.Workflow, error) {
	return domain.Workflow{}, repo.ErrNotFound
}
func (emptyWorkflowRepo) List(ctx context.Context, filter repo.EntityFilter) ([]domain.Workflow, error) {
	return nil, nil
}
func (emptyWorkflowRepo) Update(ctx context.Context, w domain.Workflow) error { return nil }
func (emptyWorkflowRepo) Delete(ctx context.Context, project, id string) error {
	return nil
}

type stubObjectStore struct {
	lastBucket string
	lastKey    string
}

func (s *stubObjectStore) PresignPut(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	s.lastBucket = bucket
	s.lastKey = key
	return "https://minio.test/put/" + key, nil
}

func (s *stubObjectStore) PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	s.lastBucket = bucket
	s.lastKey = key
	return "https://minio.test/get/" + key, nil
}

func newTestService(t *testing.T, artifacts *stubArtifactRepo, projects *stubProjectRepo, objects objectstore.Store) *Service {
	t.Helper()
	reg, err := builders.NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	svc, err := New(Config{
		Logger:   slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		Registry: reg,
		Repos: Repos{
			Projects:  projects,
			Artifacts: artifacts,
			Functions: emptyFunctionRepo{},
			Workflows: emptyWorkflowRepo{},
		},
		Objects: objects,
		Bucket:  "artifacts",
	})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	svc.newID = func() string { return "generated-id" }
	svc.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateArtifactAssignsIdentityAndDefaults(t *testing.T) {
	artifacts := newStubArtifactRepo()
	svc := newTestService(t, artifacts, newStubProjectRepo(), nil)

	out, err := svc.CreateArtifact(context.Background(), &domain.ArtifactDTO{
		Name: "model", Kind: "model", Project: "p1",
		Spec: marshal.Record{"path": "s3://bucket/key"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "generated-id" {
		t.Fatalf("expected generated id, got %q", out.ID)
	}
	if out.State != string(domain.StateCreated) {
		t.Fatalf("expected CREATED, got %q", out.State)
	}
	if out.Created.IsZero() || out.Updated.IsZero() {
		t.Fatalf("expected timestamps set: %+v", out)
	}
	if len(artifacts.created) != 1 {
		t.Fatalf("expected one stored artifact, got %d", len(artifacts.created))
	}
}

func TestUpdateArtifactMergesOntoStored(t *testing.T) {
	artifacts := newStubArtifactRepo()
	svc := newTestService(t, artifacts, newStubProjectRepo(), nil)

	created, err := svc.CreateArtifact(context.Background(), &domain.ArtifactDTO{
		Name: "model", Kind: "model", Project: "p1", State: "READY",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateArtifact(context.Background(), "p1", created.ID, &domain.ArtifactDTO{
		Name: "ignored", State: "ERROR",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "model" {
		t.Fatalf("identity must survive merge, got %q", updated.Name)
	}
	if updated.State != string(domain.StateError) {
		t.Fatalf("expected ERROR, got %q", updated.State)
	}
	if len(artifacts.updated) != 1 {
		t.Fatalf("expected one update write, got %d", len(artifacts.updated))
	}
}

func TestUpdateArtifactUnknownIDReturnsNotFound(t *testing.T) {
	svc := newTestService(t, newStubArtifactRepo(), newStubProjectRepo(), nil)

	_, err := svc.UpdateArtifact(context.Background(), "p1", "missing", &domain.ArtifactDTO{})
	if !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetProjectAggregatesChildren(t *testing.T) {
	artifacts := newStubArtifactRepo()
	projects := newStubProjectRepo()
	svc := newTestService(t, artifacts, projects, nil)

	proj, err := svc.CreateProject(context.Background(), &domain.ProjectDTO{Name: "demo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	artifact, err := builders.BuildArtifact(svc.registry, &domain.ArtifactDTO{
		ID: "a1", Name: "model", Kind: "model", Project: proj.ID,
		Spec: marshal.Record{"path": "s3://bucket/key"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := artifacts.Create(context.Background(), artifact); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	detail, err := svc.GetProject(context.Background(), proj.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Name != "demo" {
		t.Fatalf("expected project detail, got %+v", detail)
	}
	if len(detail.Artifacts) != 1 || detail.Artifacts[0].ID != "a1" {
		t.Fatalf("expected aggregated artifact, got %+v", detail.Artifacts)
	}
	// child was not marked embedded, so only the reference view is carried
	if detail.Artifacts[0].Spec != nil {
		t.Fatalf("expected reference view for child, got %+v", detail.Artifacts[0])
	}
}

func TestArtifactUploadURLScopesKey(t *testing.T) {
	artifacts := newStubArtifactRepo()
	objects := &stubObjectStore{}
	svc := newTestService(t, artifacts, newStubProjectRepo(), objects)

	created, err := svc.CreateArtifact(context.Background(), &domain.ArtifactDTO{
		Name: "model", Kind: "model", Project: "p1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := svc.ArtifactUploadURL(context.Background(), "p1", created.ID, "model.bin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url == "" {
		t.Fatalf("expected presigned url")
	}
	if objects.lastKey != "p1/"+created.ID+"/model.bin" {
		t.Fatalf("unexpected object key %q", objects.lastKey)
	}
	if objects.lastBucket != "artifacts" {
		t.Fatalf("unexpected bucket %q", objects.lastBucket)
	}

	if _, err := svc.ArtifactUploadURL(context.Background(), "p1", created.ID, "../escape.bin"); err == nil {
		t.Fatalf("expected error for path traversal filename")
	}
	if _, err := svc.ArtifactUploadURL(context.Background(), "p1", "missing", "model.bin"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown artifact, got %v", err)
	}
}
