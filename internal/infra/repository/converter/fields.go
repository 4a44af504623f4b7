package converter

// Document field names. Timestamps managed by the store (created/updated) are
// not stored in the payload; they come back as document metadata.
const (
	FieldUserID          = "userId"
	FieldProjectID       = "projectId"
	FieldTitle           = "title"
	FieldMessage         = "message"
	FieldType            = "type"
	FieldPriority        = "priority"
	FieldStatus          = "status"
	FieldRead            = "read"
	FieldActionURL       = "actionUrl"
	FieldExpiresAt       = "expiresAt"
	FieldStatusReason    = "statusReason"
	FieldStatusChangedAt = "statusChangedAt"
	FieldDeliveredAt     = "deliveredAt"
	FieldReadAt          = "readAt"
	FieldArchivedAt      = "archivedAt"

	FieldName        = "name"
	FieldDescription = "description"
	FieldOwnerID     = "ownerId"
	FieldMembers     = "members"
	FieldMemberIDs   = "memberIds"
	FieldRole        = "role"
	FieldJoinedAt    = "joinedAt"
)

// optional drops empty strings so they read back as absent rather than "".
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
