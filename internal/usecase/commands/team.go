package commands

import (
	"context"

	"sitehub/internal/domain/team"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/errs"
)

var ErrTeamAccess = errs.New("team change not permitted")

type CreateTeamRequest struct {
	ProjectID   string
	Name        string
	Description string
}

//go:generate mockgen -source=team.go -destination=../../../tests/mock/commands/mock_team.go -package=commandsmock

type TeamCommands interface {
	Create(ctx context.Context, req CreateTeamRequest, actorID string) (*team.Team, error)
	Update(ctx context.Context, id string, patch team.Patch, actorID string) (*team.Team, error)
	AddMember(ctx context.Context, teamID, userID string, role team.Role, actorID string) (*team.Team, error)
	RemoveMember(ctx context.Context, teamID, userID, actorID string) (*team.Team, error)
	Archive(ctx context.Context, id, reason, actorID string) (*team.Team, error)
	Delete(ctx context.Context, id, actorID string) error
}

type teamUseCaseImpl struct {
	repo  TeamRepository
	clock clock.Clock
}

func NewTeamUseCase(repo TeamRepository, clk clock.Clock) TeamCommands {
	return &teamUseCaseImpl{repo: repo, clock: clk}
}

// Create makes the caller the owner and first lead.
func (uc *teamUseCaseImpl) Create(ctx context.Context, req CreateTeamRequest, actorID string) (*team.Team, error) {
	t, err := team.New(req.ProjectID, req.Name, req.Description, actorID, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, t)
}

func (uc *teamUseCaseImpl) Update(ctx context.Context, id string, patch team.Patch, actorID string) (*team.Team, error) {
	// members only change through AddMember/RemoveMember
	patch.Members = nil
	if _, err := uc.requireLead(ctx, id, actorID); err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, id, patch)
}

func (uc *teamUseCaseImpl) AddMember(ctx context.Context, teamID, userID string, role team.Role, actorID string) (*team.Team, error) {
	if _, err := uc.requireLead(ctx, teamID, actorID); err != nil {
		return nil, err
	}
	return uc.repo.AddMember(ctx, teamID, userID, role)
}

// RemoveMember lets leads remove anyone but the owner, and members remove themselves.
func (uc *teamUseCaseImpl) RemoveMember(ctx context.Context, teamID, userID, actorID string) (*team.Team, error) {
	if userID != actorID {
		if _, err := uc.requireLead(ctx, teamID, actorID); err != nil {
			return nil, err
		}
	}
	return uc.repo.RemoveMember(ctx, teamID, userID)
}

func (uc *teamUseCaseImpl) Archive(ctx context.Context, id, reason, actorID string) (*team.Team, error) {
	if err := uc.requireOwner(ctx, id, actorID); err != nil {
		return nil, err
	}
	return uc.repo.Archive(ctx, id, reason)
}

func (uc *teamUseCaseImpl) Delete(ctx context.Context, id, actorID string) error {
	if err := uc.requireOwner(ctx, id, actorID); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *teamUseCaseImpl) requireLead(ctx context.Context, id, actorID string) (*team.Team, error) {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID == actorID {
		return t, nil
	}
	for _, m := range t.Members {
		if m.UserID == actorID && m.Role == team.RoleLead {
			return t, nil
		}
	}
	return nil, ErrTeamAccess
}

func (uc *teamUseCaseImpl) requireOwner(ctx context.Context, id, actorID string) error {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if t.OwnerID != actorID {
		return ErrTeamAccess
	}
	return nil
}
