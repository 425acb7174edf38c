package builders

import (
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

type logCodec struct{}

func (logCodec) Decode(src any) (any, error) {
	rec, err := marshal.AsRecord(src)
	if err != nil {
		return nil, err
	}
	f := marshal.NewFields(rec)
	dto := &domain.LogDTO{
		ID:      f.String("id"),
		Project: f.String("project"),
		Run:     f.String("run"),
		Body:    f.Record("body"),
		State:   f.String("state"),
		Created: f.Time("created"),
		Updated: f.Time("updated"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	dto.Present = f.Present()
	dto.Extra = f.Rest()
	return dto, nil
}

func (logCodec) Encode(value any) (any, error) {
	dto, ok := value.(*domain.LogDTO)
	if !ok {
		return nil, &marshal.EncodeError{Err: fmt.Errorf("expected *domain.LogDTO, got %T", value)}
	}
	rec := marshal.Record{}
	p := dto.Present
	putString(rec, p, "id", dto.ID)
	putString(rec, p, "project", dto.Project)
	putString(rec, p, "run", dto.Run)
	putRecord(rec, "body", dto.Body)
	putString(rec, p, "state", dto.State)
	putTime(rec, p, "created", dto.Created)
	putTime(rec, p, "updated", dto.Updated)
	dto.Extra.MergeInto(rec)
	return rec, nil
}

// BuildLog constructs a new log entity from a DTO.
func BuildLog(reg *marshal.Registry, dto *domain.LogDTO) (domain.Log, error) {
	out, err := marshal.Build(func() *domain.Log { return &domain.Log{} }, dto,
		func(dto *domain.LogDTO, l *domain.Log) error {
			l.ID = dto.ID
			l.Project = dto.Project
			l.Run = dto.Run
			l.Created = dto.Created
			l.Updated = dto.Updated
			return nil
		},
		applyLogState,
		applyLogBlobs(reg),
	)
	if err != nil {
		return domain.Log{}, buildErr(TagLog, err)
	}
	return *out, nil
}

// UpdateLog merges a DTO onto an existing log entry; identity columns stay
// untouched and omitted fields are reset.
func UpdateLog(reg *marshal.Registry, existing domain.Log, dto *domain.LogDTO) (domain.Log, error) {
	out, err := marshal.Combine(existing, dto,
		applyLogState,
		applyLogBlobs(reg),
		func(dto *domain.LogDTO, l *domain.Log) error {
			l.Updated = dto.Updated
			return nil
		},
	)
	if err != nil {
		return domain.Log{}, buildErr(TagLog, err)
	}
	return out, nil
}

// BuildLogDTO renders the caller-facing view of a log entry.
func BuildLogDTO(reg *marshal.Registry, entry domain.Log) (*domain.LogDTO, error) {
	out, err := marshal.Build(func() *domain.LogDTO { return &domain.LogDTO{} }, entry,
		func(l domain.Log, dto *domain.LogDTO) error {
			dto.ID = l.ID
			dto.Project = l.Project
			dto.Run = l.Run
			dto.State = string(l.State)
			dto.Created = l.Created
			dto.Updated = l.Updated
			return nil
		},
		func(l domain.Log, dto *domain.LogDTO) error {
			body, err := decodeBlob(reg, l.Body)
			if err != nil {
				return err
			}
			extra, err := decodeExtension(reg, l.Extra)
			if err != nil {
				return err
			}
			dto.Body = body
			dto.Extra = extra
			return nil
		},
	)
	if err != nil {
		return nil, buildErr(TagLog, err)
	}
	return out, nil
}

func applyLogState(dto *domain.LogDTO, l *domain.Log) error {
	state, err := domain.NormalizeState(dto.State, domain.LogStates, domain.StateCreated)
	if err != nil {
		return err
	}
	l.State = state
	return nil
}

func applyLogBlobs(reg *marshal.Registry) marshal.Applier[*domain.LogDTO, domain.Log] {
	return func(dto *domain.LogDTO, l *domain.Log) error {
		body, err := encodeBlob(reg, dto.Body)
		if err != nil {
			return err
		}
		extra, err := encodeExtension(reg, dto.Extra)
		if err != nil {
			return err
		}
		l.Body = body
		l.Extra = extra
		return nil
	}
}
