package queries

import (
	"context"

	"sitehub/internal/domain/team"
)

//go:generate mockgen -source=team.go -destination=../../../tests/mock/queries/mock_team.go -package=queriesmock

type TeamReadStore interface {
	FindByID(ctx context.Context, id string) (*team.Team, error)
	ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*team.Team, error)
	ListByMember(ctx context.Context, userID string) ([]*team.Team, error)
}

type TeamQueries interface {
	GetByID(ctx context.Context, id string) (*team.Team, error)
	ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*team.Team, error)
	ListByMember(ctx context.Context, userID string) ([]*team.Team, error)
}

type teamQueriesImpl struct {
	repo TeamReadStore
}

func NewTeamQueries(repo TeamReadStore) TeamQueries {
	return &teamQueriesImpl{repo: repo}
}

func (q *teamQueriesImpl) GetByID(ctx context.Context, id string) (*team.Team, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *teamQueriesImpl) ListByProject(ctx context.Context, projectID string, includeArchived bool) ([]*team.Team, error) {
	return q.repo.ListByProject(ctx, projectID, includeArchived)
}

func (q *teamQueriesImpl) ListByMember(ctx context.Context, userID string) ([]*team.Team, error) {
	return q.repo.ListByMember(ctx, userID)
}
