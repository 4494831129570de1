package entity

import (
	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a membership enrollment request. It starts pending and
// transitions exactly once, by staff action, to approved or rejected.
type Application struct {
	Base
	UserID         uuid.UUID         `db:"user_id"`
	Name           string            `db:"name"`
	NameKana       string            `db:"name_kana"`
	Grade          string            `db:"grade"`
	Email          string            `db:"email"`
	Phone          string            `db:"phone"`
	ParentName     *string           `db:"parent_name"`
	Notes          *string           `db:"notes"`
	Status         ApplicationStatus `db:"status"`
	RejectedReason *string           `db:"rejected_reason"`
	AdminMemo      *string           `db:"admin_memo"`
}
