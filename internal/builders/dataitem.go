package builders

import (
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

type dataItemCodec struct{}

func (dataItemCodec) Decode(src any) (any, error) {
	rec, err := marshal.AsRecord(src)
	if err != nil {
		return nil, err
	}
	f := marshal.NewFields(rec)
	dto := &domain.DataItemDTO{
		ID:       f.String("id"),
		Name:     f.String("name"),
		Kind:     f.String("kind"),
		Project:  f.String("project"),
		Metadata: f.Record("metadata"),
		Spec:     f.Record("spec"),
		State:    f.String("state"),
		Embedded: f.BoolPtr("embedded"),
		Created:  f.Time("created"),
		Updated:  f.Time("updated"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	dto.Present = f.Present()
	dto.Extra = f.Rest()
	return dto, nil
}

func (dataItemCodec) Encode(value any) (any, error) {
	dto, ok := value.(*domain.DataItemDTO)
	if !ok {
		return nil, &marshal.EncodeError{Err: fmt.Errorf("expected *domain.DataItemDTO, got %T", value)}
	}
	rec := marshal.Record{}
	p := dto.Present
	putString(rec, p, "id", dto.ID)
	putString(rec, p, "name", dto.Name)
	putString(rec, p, "kind", dto.Kind)
	putString(rec, p, "project", dto.Project)
	putRecord(rec, "metadata", dto.Metadata)
	putRecord(rec, "spec", dto.Spec)
	putString(rec, p, "state", dto.State)
	if dto.Embedded != nil {
		rec["embedded"] = *dto.Embedded
	}
	putTime(rec, p, "created", dto.Created)
	putTime(rec, p, "updated", dto.Updated)
	dto.Extra.MergeInto(rec)
	return rec, nil
}

// BuildDataItem constructs a new data item entity from a DTO.
func BuildDataItem(reg *marshal.Registry, dto *domain.DataItemDTO) (domain.DataItem, error) {
	out, err := marshal.Build(func() *domain.DataItem { return &domain.DataItem{} }, dto,
		func(dto *domain.DataItemDTO, d *domain.DataItem) error {
			d.ID = dto.ID
			d.Name = dto.Name
			d.Kind = dto.Kind
			d.Project = dto.Project
			d.Created = dto.Created
			d.Updated = dto.Updated
			return nil
		},
		applyDataItemState,
		applyDataItemEmbedded,
		applyDataItemBlobs(reg),
	)
	if err != nil {
		return domain.DataItem{}, buildErr(TagDataItem, err)
	}
	return *out, nil
}

// UpdateDataItem merges a DTO onto an existing data item; identity columns
// stay untouched and omitted fields are reset.
func UpdateDataItem(reg *marshal.Registry, existing domain.DataItem, dto *domain.DataItemDTO) (domain.DataItem, error) {
	out, err := marshal.Combine(existing, dto,
		applyDataItemState,
		applyDataItemEmbedded,
		applyDataItemBlobs(reg),
		func(dto *domain.DataItemDTO, d *domain.DataItem) error {
			d.Updated = dto.Updated
			return nil
		},
	)
	if err != nil {
		return domain.DataItem{}, buildErr(TagDataItem, err)
	}
	return out, nil
}

// BuildDataItemDTO renders the caller-facing view of a data item.
func BuildDataItemDTO(reg *marshal.Registry, item domain.DataItem, embeddable bool) (*domain.DataItemDTO, error) {
	out, err := marshal.Build(func() *domain.DataItemDTO { return &domain.DataItemDTO{} }, item,
		func(d domain.DataItem, dto *domain.DataItemDTO) error {
			dto.ID = d.ID
			dto.Name = d.Name
			dto.Kind = d.Kind
			dto.Project = d.Project
			return nil
		},
		applyDataItemView(reg, embeddable),
	)
	if err != nil {
		return nil, buildErr(TagDataItem, err)
	}
	return out, nil
}

func applyDataItemState(dto *domain.DataItemDTO, d *domain.DataItem) error {
	state, err := domain.NormalizeState(dto.State, domain.DataItemStates, domain.StateCreated)
	if err != nil {
		return err
	}
	d.State = state
	return nil
}

func applyDataItemEmbedded(dto *domain.DataItemDTO, d *domain.DataItem) error {
	d.Embedded = dto.Embedded != nil && *dto.Embedded
	return nil
}

func applyDataItemBlobs(reg *marshal.Registry) marshal.Applier[*domain.DataItemDTO, domain.DataItem] {
	return func(dto *domain.DataItemDTO, d *domain.DataItem) error {
		metadata, err := encodeMetadata(reg, dto.Metadata)
		if err != nil {
			return err
		}
		spec, err := encodeBlob(reg, dto.Spec)
		if err != nil {
			return err
		}
		extra, err := encodeExtension(reg, dto.Extra)
		if err != nil {
			return err
		}
		d.Metadata = metadata
		d.Spec = spec
		d.Extra = extra
		return nil
	}
}

func applyDataItemView(reg *marshal.Registry, embeddable bool) marshal.Applier[domain.DataItem, domain.DataItemDTO] {
	return func(d domain.DataItem, dto *domain.DataItemDTO) error {
		var viewErr error
		marshal.ApplyWhen(embeddable, func(v domain.DataItem) bool { return v.Embedded }, dto, d,
			func(dst *domain.DataItemDTO, v domain.DataItem) {
				metadata, err := decodeBlob(reg, v.Metadata)
				if err != nil {
					viewErr = err
					return
				}
				spec, err := decodeBlob(reg, v.Spec)
				if err != nil {
					viewErr = err
					return
				}
				extra, err := decodeExtension(reg, v.Extra)
				if err != nil {
					viewErr = err
					return
				}
				dst.Metadata = metadata
				dst.Spec = spec
				dst.Extra = extra
				embedded := v.Embedded
				dst.Embedded = &embedded
				dst.State = string(v.State)
				dst.Created = v.Created
				dst.Updated = v.Updated
			})
		return viewErr
	}
}
