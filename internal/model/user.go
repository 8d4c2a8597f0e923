package model

import "time"

// Status represents the registration lifecycle state of a member.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusDeactive Status = "deactive"
	StatusRejected Status = "rejected"
)

// legacy value written by older clients, folded into StatusActive on read
const statusApproved Status = "approved"

// ValidStatus reports whether s is one of the canonical status values.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusActive, StatusDeactive, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether an administrator may move a record from s
// to next. Rejected is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusActive || next == StatusRejected || next == StatusDeactive
	case StatusActive:
		return next == StatusDeactive || next == StatusRejected
	case StatusDeactive:
		return next == StatusActive
	}
	return false
}

// Role represents a member's role in the community.
type Role string

const (
	RoleMember     Role = "member"
	RoleStaff      Role = "staff"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

// legacy default role, folded into RoleMember on read
const roleUser Role = "user"

// ValidRole reports whether r is one of the canonical role values.
func ValidRole(r Role) bool {
	switch r {
	case RoleMember, RoleStaff, RoleSupervisor, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents one registrant/member record.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	CountryCode  string    `json:"countryCode"`
	PhoneNumber  string    `json:"phoneNumber"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	Instagram    string    `json:"instagram,omitempty"`
	Tiktok       string    `json:"tiktok,omitempty"`
	Facebook     string    `json:"facebook,omitempty"`
	IDCardImage  string    `json:"idCardImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Normalize folds legacy field values into the canonical sets. The stored
// collection has no schema version, so readers must tolerate records
// written before the status/role enums settled.
func (u *User) Normalize() {
	if u.Status == statusApproved {
		u.Status = StatusActive
	}
	if u.Status == "" {
		u.Status = StatusPending
	}
	if u.Role == roleUser || u.Role == "" {
		u.Role = RoleMember
	}
}
