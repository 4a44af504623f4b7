package converter

import (
	"time"

	"sitehub/internal/domain/team"
	"sitehub/internal/infra/docstore"
)

func TeamToFields(t *team.Team) docstore.Fields {
	return docstore.Fields{
		FieldProjectID:       t.ProjectID,
		FieldName:            t.Name,
		FieldDescription:     optional(t.Description),
		FieldOwnerID:         t.OwnerID,
		FieldMembers:         MembersToFields(t.Members),
		FieldMemberIDs:       t.MemberIDs(),
		FieldStatus:          string(t.Status),
		FieldStatusReason:    optional(t.StatusReason),
		FieldStatusChangedAt: docstore.TimeValue(t.StatusChangedAt),
		FieldArchivedAt:      docstore.TimeValue(t.ArchivedAt),
	}
}

func MembersToFields(members []team.Member) []any {
	out := make([]any, len(members))
	for i, m := range members {
		out[i] = map[string]any{
			FieldUserID:   m.UserID,
			FieldRole:     string(m.Role),
			FieldJoinedAt: m.JoinedAt.UTC(),
		}
	}
	return out
}

func TeamFromDocument(doc docstore.Document) (*team.Team, error) {
	d := doc.Data
	t := &team.Team{
		ID:              doc.ID,
		ProjectID:       d.String(FieldProjectID),
		Name:            d.String(FieldName),
		Description:     d.String(FieldDescription),
		OwnerID:         d.String(FieldOwnerID),
		Status:          team.Status(d.String(FieldStatus)),
		StatusReason:    d.String(FieldStatusReason),
		StatusChangedAt: utcPtr(d.TimePtr(FieldStatusChangedAt)),
		ArchivedAt:      utcPtr(d.TimePtr(FieldArchivedAt)),
		CreatedAt:       doc.CreateTime.UTC(),
		UpdatedAt:       doc.UpdateTime.UTC(),
	}
	for _, m := range d.Maps(FieldMembers) {
		t.Members = append(t.Members, team.Member{
			UserID:   m.String(FieldUserID),
			Role:     team.Role(m.String(FieldRole)),
			JoinedAt: m.Time(FieldJoinedAt).UTC(),
		})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// TeamPatchToFields keeps the member index in step with the member list.
func TeamPatchToFields(p team.Patch) docstore.Fields {
	f := docstore.Fields{}
	if p.Name != nil {
		f[FieldName] = *p.Name
	}
	if p.Description != nil {
		f[FieldDescription] = optional(*p.Description)
	}
	if p.Members != nil {
		ids := make([]string, len(p.Members))
		for i, m := range p.Members {
			ids[i] = m.UserID
		}
		f[FieldMembers] = MembersToFields(p.Members)
		f[FieldMemberIDs] = ids
	}
	return f
}

func TeamStatusFields(status team.Status, reason string, now time.Time) docstore.Fields {
	now = now.UTC()
	f := docstore.Fields{
		FieldStatus:          string(status),
		FieldStatusReason:    optional(reason),
		FieldStatusChangedAt: now,
	}
	if status == team.StatusArchived {
		f[FieldArchivedAt] = now
	}
	return f
}
