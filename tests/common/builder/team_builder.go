//go:build unit || e2e

package builder

import (
	"time"

	"sitehub/internal/domain/team"
	reqdto "sitehub/internal/handler/dto/request"
)

type TeamBuilder struct {
	ProjectID   string
	Name        string
	Description string
	OwnerID     string
	Now         time.Time
}

func NewTeamBuilder() *TeamBuilder {
	return &TeamBuilder{
		ProjectID:   "p1",
		Name:        "Structural crew",
		Description: "Frame and slab work",
		OwnerID:     "u1",
		Now:         time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *TeamBuilder) With(mutate func(*TeamBuilder)) *TeamBuilder {
	mutate(b)
	return b
}

func (b *TeamBuilder) BuildDomain() (*team.Team, error) {
	return team.New(b.ProjectID, b.Name, b.Description, b.OwnerID, b.Now)
}

func (b *TeamBuilder) MustBuildDomain() *team.Team {
	t, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return t
}

func (b *TeamBuilder) BuildCreateRequestDTO() reqdto.CreateTeamRequest {
	return reqdto.CreateTeamRequest{
		ProjectID:   b.ProjectID,
		Name:        b.Name,
		Description: b.Description,
	}
}

func (b *TeamBuilder) BuildStored(id string) *team.Team {
	t := b.MustBuildDomain()
	t.ID = id
	return t
}
