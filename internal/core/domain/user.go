package domain

import (
	"bytes"
	"encoding/json"
)

const (
	RoleAdmin = "admin"
)

// UserStatus is the account activation flag.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// Valid reports whether s is a known account status.
func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserInactive
}

// ApprovalStatus gates platform feature access for a volunteer.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Decidable reports whether an admin may move a user into s.
func (s ApprovalStatus) Decidable() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// Document is an uploaded user file. The API sends either a bare path or an
// object with a name and path.
type Document struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Path string `json:"path"`
}

func (d *Document) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &d.Path)
	}
	type plain Document
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = Document(p)
	return nil
}

// User is a volunteer record owned by the Share2care API.
type User struct {
	ID             FlexString     `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Mobile         FlexString     `json:"mobile"`
	Age            int            `json:"age,omitempty"`
	Location       string         `json:"location,omitempty"`
	Skills         []string       `json:"skills,omitempty"`
	Documents      []Document     `json:"documents,omitempty"`
	Others         map[string]any `json:"others,omitempty"`
	Status         UserStatus     `json:"status"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	AdminComments  string         `json:"admin_comments,omitempty"`
	ApprovalDate   string         `json:"approval_date,omitempty"`
	CreatedAt      string         `json:"created_at"`
}
