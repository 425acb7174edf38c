package builders

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

func newTestRegistry(t *testing.T) *marshal.Registry {
	t.Helper()
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return reg
}

func TestArtifactDecodeCapturesUnknownFields(t *testing.T) {
	reg := newTestRegistry(t)

	rec := marshal.Record{
		"id":           "a1",
		"kind":         "artifact",
		"project":      "p1",
		"name":         "n1",
		"unknownField": float64(42),
	}

	dto, err := marshal.DecodeAs[*domain.ArtifactDTO](reg, TagArtifact, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.ID != "a1" || dto.Kind != "artifact" || dto.Project != "p1" || dto.Name != "n1" {
		t.Fatalf("declared fields not populated: %+v", dto)
	}
	if v, ok := dto.Extra.Get("unknownField"); !ok || v != float64(42) {
		t.Fatalf("expected unknownField carried by extension, got %v", v)
	}

	back, err := marshal.EncodeRecord(reg, TagArtifact, dto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(back, rec) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", back, rec)
	}
}

func TestArtifactRoundTripKeepsExplicitZeroValues(t *testing.T) {
	reg := newTestRegistry(t)

	rec := marshal.Record{
		"id":      "a1",
		"name":    "",
		"kind":    "artifact",
		"project": "p1",
		"state":   "",
	}
	dto, err := marshal.DecodeAs[*domain.ArtifactDTO](reg, TagArtifact, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := marshal.EncodeRecord(reg, TagArtifact, dto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(back, rec) {
		t.Fatalf("explicit zero values lost on round trip:\n got %#v\nwant %#v", back, rec)
	}
}

func TestArtifactEncodeOmitsNullDeclaredField(t *testing.T) {
	reg := newTestRegistry(t)

	// a null declared field decodes as absent and re-encodes as absent
	dto, err := marshal.DecodeAs[*domain.ArtifactDTO](reg, TagArtifact, marshal.Record{"id": "a1", "name": nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := marshal.EncodeRecord(reg, TagArtifact, dto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := back["name"]; present {
		t.Fatalf("null field must re-encode as absent: %#v", back)
	}
}

func TestArtifactPartitionInvariant(t *testing.T) {
	reg := newTestRegistry(t)

	rec := marshal.Record{
		"id":      "a1",
		"name":    "n1",
		"kind":    "model",
		"project": "p1",
		"spec":    marshal.Record{"path": "s3://bucket/key"},
		"customA": "x",
		"customB": marshal.Record{"deep": true},
	}

	dto, err := marshal.DecodeAs[*domain.ArtifactDTO](reg, TagArtifact, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	declared := map[string]bool{
		"id": true, "name": true, "kind": true, "project": true, "spec": true,
	}
	for _, key := range dto.Extra.Keys() {
		if declared[key] {
			t.Fatalf("declared key %q leaked into extension", key)
		}
	}
	total := len(declared) + dto.Extra.Len()
	if total != len(rec) {
		t.Fatalf("declared+extension = %d keys, source has %d", total, len(rec))
	}
}

func TestArtifactMalformedDeclaredFieldFailsDecode(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Decode(TagArtifact, marshal.Record{"id": "a1", "name": 42})
	var decodeErr *marshal.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Field != "name" {
		t.Fatalf("expected offending field recorded, got %q", decodeErr.Field)
	}
	if decodeErr.Tag != TagArtifact {
		t.Fatalf("expected tag recorded, got %q", decodeErr.Tag)
	}
}

func TestBuildArtifactDefaultsState(t *testing.T) {
	reg := newTestRegistry(t)

	dto := &domain.ArtifactDTO{ID: "a1", Name: "n1", Kind: "model", Project: "p1"}
	artifact, err := BuildArtifact(reg, dto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artifact.State != domain.StateCreated {
		t.Fatalf("expected CREATED, got %s", artifact.State)
	}
}

func TestBuildArtifactRejectsUnknownState(t *testing.T) {
	reg := newTestRegistry(t)

	dto := &domain.ArtifactDTO{ID: "a1", Name: "n1", Kind: "model", Project: "p1", State: "ARCHIVED"}
	_, err := BuildArtifact(reg, dto)

	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("expected BuildError, got %v", err)
	}
	var invalid *domain.InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateError cause, got %v", err)
	}
}

func TestUpdateArtifactLeavesIdentityAndExistingOnFailure(t *testing.T) {
	reg := newTestRegistry(t)

	existing := domain.Artifact{
		ID: "a1", Name: "n1", Kind: "model", Project: "p1",
		State: domain.StateReady,
	}
	_, err := UpdateArtifact(reg, existing, &domain.ArtifactDTO{State: "NOPE"})
	if err == nil {
		t.Fatalf("expected invalid state to fail")
	}

	updated, err := UpdateArtifact(reg, existing, &domain.ArtifactDTO{
		Name: "renamed", State: "READY",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "n1" || updated.ID != "a1" {
		t.Fatalf("identity columns must not change on merge: %+v", updated)
	}
}

func TestUpdateArtifactResetsStateWhenAbsent(t *testing.T) {
	reg := newTestRegistry(t)

	existing := domain.Artifact{
		ID: "a1", Name: "n1", Kind: "model", Project: "p1",
		State: domain.StateReady,
	}

	// the incoming payload carries a null state; the state applier always
	// writes, so the stored READY falls back to the initial state
	dto, err := marshal.DecodeAs[*domain.ArtifactDTO](reg, TagArtifact, marshal.Record{"state": nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updated, err := UpdateArtifact(reg, existing, dto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.State != domain.StateCreated {
		t.Fatalf("expected merge to reset state to CREATED, got %s", updated.State)
	}
}

func TestArtifactProjectionSwitch(t *testing.T) {
	reg := newTestRegistry(t)

	embedded := true
	dto := &domain.ArtifactDTO{
		ID: "a1", Name: "n1", Kind: "model", Project: "p1",
		Spec:     marshal.Record{"path": "s3://bucket/key"},
		Metadata: marshal.Record{"version": "v1"},
		Embedded: &embedded,
		Created:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Updated:  time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
	}

	build := func(t *testing.T, embedded bool) domain.Artifact {
		t.Helper()
		dto := *dto
		dto.Embedded = &embedded
		artifact, err := BuildArtifact(reg, &dto)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return artifact
	}

	cases := []struct {
		name       string
		embedded   bool
		embeddable bool
		want       bool
	}{
		{name: "not embedded, forced", embedded: false, embeddable: true, want: true},
		{name: "not embedded, deferred", embedded: false, embeddable: false, want: false},
		{name: "embedded, forced", embedded: true, embeddable: true, want: true},
		{name: "embedded, deferred", embedded: true, embeddable: false, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := BuildArtifactDTO(reg, build(t, tc.embedded), tc.embeddable)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if view.ID != "a1" || view.Name != "n1" {
				t.Fatalf("identity must always project: %+v", view)
			}
			got := view.Spec != nil
			if got != tc.want {
				t.Fatalf("expected spec included=%v, got %v", tc.want, got)
			}
			if tc.want {
				if view.State != string(domain.StateCreated) {
					t.Fatalf("expected state projected, got %q", view.State)
				}
				if view.Metadata == nil {
					t.Fatalf("expected metadata projected")
				}
				if view.Created.IsZero() || view.Updated.IsZero() {
					t.Fatalf("expected timestamps projected")
				}
			} else if view.State != "" || view.Metadata != nil {
				t.Fatalf("expected nested fields omitted: %+v", view)
			}
		})
	}
}

func TestArtifactBlobsSurviveStorageRoundTrip(t *testing.T) {
	reg := newTestRegistry(t)

	embedded := true
	dto := &domain.ArtifactDTO{
		ID: "a1", Name: "n1", Kind: "model", Project: "p1",
		Spec:     marshal.Record{"path": "s3://bucket/key", "size": float64(12)},
		Metadata: marshal.Record{"version": "v1", "custom": "kept"},
		Embedded: &embedded,
	}
	dto.Extra = marshal.NewExtension()
	dto.Extra.Put("vendorTag", "acme")

	artifact, err := BuildArtifact(reg, dto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(artifact.Spec) == 0 || len(artifact.Metadata) == 0 || len(artifact.Extra) == 0 {
		t.Fatalf("expected encoded blobs, got %+v", artifact)
	}

	view, err := BuildArtifactDTO(reg, artifact, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(view.Spec, dto.Spec) {
		t.Fatalf("spec lost in storage round trip:\n got %#v\nwant %#v", view.Spec, dto.Spec)
	}
	if view.Metadata["custom"] != "kept" {
		t.Fatalf("undeclared metadata key lost: %#v", view.Metadata)
	}
	if v, ok := view.Extra.Get("vendorTag"); !ok || v != "acme" {
		t.Fatalf("extension lost in storage round trip: %v", v)
	}
}
