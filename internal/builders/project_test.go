package builders

import (
	"reflect"
	"testing"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

func TestProjectDecodeIgnoresAggregateLists(t *testing.T) {
	reg := newTestRegistry(t)

	rec := marshal.Record{
		"id":        "p1",
		"name":      "demo",
		"source":    "git://example/demo",
		"artifacts": []any{marshal.Record{"id": "a1"}},
		"ownerTeam": "ml",
	}
	dto, err := marshal.DecodeAs[*domain.ProjectDTO](reg, TagProject, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.ID != "p1" || dto.Source != "git://example/demo" {
		t.Fatalf("declared fields not populated: %+v", dto)
	}
	if len(dto.Artifacts) != 0 {
		t.Fatalf("aggregate lists are response-only, got %+v", dto.Artifacts)
	}
	if _, ok := dto.Extra.Get("artifacts"); ok {
		t.Fatalf("aggregate key must not leak into extension")
	}
	if _, ok := dto.Extra.Get("ownerTeam"); !ok {
		t.Fatalf("undeclared key dropped")
	}
}

func TestProjectReferenceViewCarriesIdentityOnly(t *testing.T) {
	reg := newTestRegistry(t)

	project, err := BuildProject(reg, &domain.ProjectDTO{
		ID: "p1", Name: "demo", Description: "demo project",
		Metadata: marshal.Record{"version": "v1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ref, err := BuildProjectDTO(reg, project, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "p1" || ref.Name != "demo" {
		t.Fatalf("identity missing from reference view: %+v", ref)
	}
	if ref.Description != "" || ref.Metadata != nil || ref.State != "" {
		t.Fatalf("reference view must omit detail fields: %+v", ref)
	}

	full, err := BuildProjectDTO(reg, project, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if full.Description != "demo project" || full.State != string(domain.StateCreated) {
		t.Fatalf("full view missing detail fields: %+v", full)
	}
	if !reflect.DeepEqual(full.Metadata, marshal.Record{"version": "v1"}) {
		t.Fatalf("metadata lost: %#v", full.Metadata)
	}
}

func TestProjectEncodeRendersChildLists(t *testing.T) {
	reg := newTestRegistry(t)

	dto := &domain.ProjectDTO{
		ID:   "p1",
		Name: "demo",
		Artifacts: []*domain.ArtifactDTO{
			{ID: "a1", Name: "model", Kind: "model", Project: "p1"},
		},
		Functions: []*domain.FunctionDTO{
			{ID: "f1", Name: "train", Kind: "job", Project: "p1"},
		},
	}
	rec, err := marshal.EncodeRecord(reg, TagProject, dto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	artifacts, ok := rec["artifacts"].([]any)
	if !ok || len(artifacts) != 1 {
		t.Fatalf("expected one artifact child, got %#v", rec["artifacts"])
	}
	child, ok := artifacts[0].(marshal.Record)
	if !ok || child["id"] != "a1" {
		t.Fatalf("child not rendered through its own format: %#v", artifacts[0])
	}
	if _, present := rec["workflows"]; present {
		t.Fatalf("empty child list must be omitted")
	}
}

func TestUpdateProjectKeepsIdentity(t *testing.T) {
	reg := newTestRegistry(t)

	project, err := BuildProject(reg, &domain.ProjectDTO{ID: "p1", Name: "demo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updated, err := UpdateProject(reg, project, &domain.ProjectDTO{
		Name: "renamed", Description: "updated", State: "READY",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != "p1" || updated.Name != "demo" {
		t.Fatalf("identity columns must not change on merge: %+v", updated)
	}
	if updated.Description != "updated" || updated.State != domain.StateReady {
		t.Fatalf("merge did not apply detail fields: %+v", updated)
	}
}
