package domain

import "time"

// StepOutcome is the result of one step of a multi-step workflow.
type StepOutcome struct {
	Step     string `json:"step"     bson:"step"`
	Optional bool   `json:"optional" bson:"optional"`
	OK       bool   `json:"ok"       bson:"ok"`
	Error    string `json:"error,omitempty" bson:"error,omitempty"`
}

// ApprovalRecord is the audit entry written for every approval decision.
type ApprovalRecord struct {
	UserID    string         `json:"user_id"    bson:"user_id"`
	Status    ApprovalStatus `json:"status"     bson:"status"`
	Comments  string         `json:"comments,omitempty" bson:"comments,omitempty"`
	DecidedBy string         `json:"decided_by" bson:"decided_by"`
	Succeeded bool           `json:"succeeded"  bson:"succeeded"`
	Steps     []StepOutcome  `json:"steps"      bson:"steps"`
	DecidedAt time.Time      `json:"decided_at" bson:"decided_at"`
}
