package repo

import (
	"context"
	"errors"

	"github.com/metahub-labs/metahub-go/internal/domain"
)

// ErrNotFound is returned when a lookup matches no stored entity.
var ErrNotFound = errors.New("entity not found")

type ProjectFilter struct {
	Name  string
	State string
	Limit int
}

// EntityFilter narrows listings of the project-scoped static entities
// (artifacts, data items, functions, workflows).
type EntityFilter struct {
	Project string
	Name    string
	Kind    string
	State   string
	Limit   int
}

type RunFilter struct {
	Project string
	Kind    string
	Task    string
	State   string
	Limit   int
}

type LogFilter struct {
	Project string
	Run     string
	Limit   int
}

// ProjectRepository manages projects. Projects are addressed by id alone;
// every other entity lives inside a project scope.
type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) error
	Get(ctx context.Context, id string) (domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
	Update(ctx context.Context, project domain.Project) error
	Delete(ctx context.Context, id string) error
}

type ArtifactRepository interface {
	Create(ctx context.Context, artifact domain.Artifact) error
	Get(ctx context.Context, project, id string) (domain.Artifact, error)
	List(ctx context.Context, filter EntityFilter) ([]domain.Artifact, error)
	Update(ctx context.Context, artifact domain.Artifact) error
	Delete(ctx context.Context, project, id string) error
}

type DataItemRepository interface {
	Create(ctx context.Context, item domain.DataItem) error
	Get(ctx context.Context, project, id string) (domain.DataItem, error)
	List(ctx context.Context, filter EntityFilter) ([]domain.DataItem, error)
	Update(ctx context.Context, item domain.DataItem) error
	Delete(ctx context.Context, project, id string) error
}

type FunctionRepository interface {
	Create(ctx context.Context, fn domain.Function) error
	Get(ctx context.Context, project, id string) (domain.Function, error)
	List(ctx context.Context, filter EntityFilter) ([]domain.Function, error)
	Update(ctx context.Context, fn domain.Function) error
	Delete(ctx context.Context, project, id string) error
}

type WorkflowRepository interface {
	Create(ctx context.Context, workflow domain.Workflow) error
	Get(ctx context.Context, project, id string) (domain.Workflow, error)
	List(ctx context.Context, filter EntityFilter) ([]domain.Workflow, error)
	Update(ctx context.Context, workflow domain.Workflow) error
	Delete(ctx context.Context, project, id string) error
}

type RunRepository interface {
	Create(ctx context.Context, run domain.Run) error
	Get(ctx context.Context, project, id string) (domain.Run, error)
	List(ctx context.Context, filter RunFilter) ([]domain.Run, error)
	Update(ctx context.Context, run domain.Run) error
	Delete(ctx context.Context, project, id string) error
}

type LogRepository interface {
	Create(ctx context.Context, entry domain.Log) error
	Get(ctx context.Context, project, id string) (domain.Log, error)
	List(ctx context.Context, filter LogFilter) ([]domain.Log, error)
	Update(ctx context.Context, entry domain.Log) error
	Delete(ctx context.Context, project, id string) error
}
