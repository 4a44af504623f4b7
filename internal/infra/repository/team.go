package repository

import (
	"context"
	"log/slog"
	"time"

	"sitehub/internal/domain/team"
	"sitehub/internal/infra"
	"sitehub/internal/infra/docstore"
	"sitehub/internal/infra/repository/converter"
	"sitehub/internal/pkg/clock"
)

const (
	TeamCollection = "teams"
	DefaultTeamTTL = 8 * time.Minute
)

type teamCodec struct{}

func (teamCodec) Collection() string { return TeamCollection }

func (teamCodec) Validate(t *team.Team) error { return t.Validate() }

func (teamCodec) SetID(t *team.Team, id string) { t.ID = id }

func (teamCodec) Encode(t *team.Team) docstore.Fields { return converter.TeamToFields(t) }

func (teamCodec) Decode(doc docstore.Document) (*team.Team, error) {
	return converter.TeamFromDocument(doc)
}

func (teamCodec) EncodePatch(p team.Patch) (docstore.Fields, error) {
	normalized, err := p.Normalize()
	if err != nil {
		return nil, err
	}
	return converter.TeamPatchToFields(normalized), nil
}

func (teamCodec) EncodeStatus(status, reason string, now time.Time) (docstore.Fields, error) {
	s, err := team.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return converter.TeamStatusFields(s, reason, now), nil
}

type TeamRepository struct {
	*Cached[team.Team, team.Patch]
}

func NewTeamRepository(store docstore.Store, ttl time.Duration, clk clock.Clock, logger *slog.Logger) *TeamRepository {
	if ttl <= 0 {
		ttl = DefaultTeamTTL
	}
	return &TeamRepository{
		Cached: NewCached(store, teamCodec{}, func(t *team.Team) string { return t.ID }, ttl, clk, logger),
	}
}

func (r *TeamRepository) ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*team.Team, error) {
	filters := []docstore.Filter{docstore.Where(converter.FieldProjectID, docstore.OpEqual, projectID)}
	if !includeArchived {
		filters = append(filters, docstore.Where(converter.FieldStatus, docstore.OpEqual, string(team.StatusActive)))
	}
	return r.Find(ctx, docstore.Query{
		Filters: filters,
		OrderBy: &docstore.Order{Field: converter.FieldName},
	})
}

func (r *TeamRepository) ListByMember(ctx context.Context, userID string) ([]*team.Team, error) {
	return r.Find(ctx, docstore.Query{
		Filters: []docstore.Filter{docstore.Where(converter.FieldMemberIDs, docstore.OpArrayContains, userID)},
		OrderBy: &docstore.Order{Field: converter.FieldName},
	})
}

// AddMember reads the canonical member list and writes it back with userID appended.
// Concurrent membership edits are last-write-wins.
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID string, role team.Role) (*team.Team, error) {
	t, err := r.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	members, err := t.WithMember(userID, role, r.Now())
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindValidation, "cannot add member", err)
	}
	return r.Update(ctx, teamID, team.Patch{Members: members})
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) (*team.Team, error) {
	t, err := r.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	members, err := t.WithoutMember(userID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindValidation, "cannot remove member", err)
	}
	return r.Update(ctx, teamID, team.Patch{Members: members})
}

func (r *TeamRepository) UpdateStatus(ctx context.Context, id string, status team.Status, reason string) (*team.Team, error) {
	return r.Cached.UpdateStatus(ctx, id, string(status), reason)
}

func (r *TeamRepository) Archive(ctx context.Context, id, reason string) (*team.Team, error) {
	return r.UpdateStatus(ctx, id, team.StatusArchived, reason)
}
