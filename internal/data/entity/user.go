package entity

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	Base
	LineUserID   *string  `db:"line_user_id"` // nil for staff accounts
	Name         string   `db:"name"`
	Email        *string  `db:"email"`
	PasswordHash *string  `db:"password"` // staff accounts only
	ProfileImage *string  `db:"profile_image"`
	Role         UserRole `db:"role"`
}
