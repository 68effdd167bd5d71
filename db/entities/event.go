package entities

import (
	"github.com/casebridge-io/casebridge/pkg/types"
)

// Status is the lifecycle state of an event.
//
// received -> processing -> processed | failed | requires_action
//
// Only failed and received events may re-enter processing, via an explicit
// reprocess. processed and requires_action are final.
type Status string

const (
	StatusReceived       Status = "received"
	StatusProcessing     Status = "processing"
	StatusProcessed      Status = "processed"
	StatusFailed         Status = "failed"
	StatusRequiresAction Status = "requires_action"
)

func (s Status) Terminal() bool {
	switch s {
	case StatusProcessed, StatusFailed, StatusRequiresAction:
		return true
	}
	return false
}

func (s Status) ReprocessEligible() bool {
	return s == StatusFailed || s == StatusReceived
}

// Event types emitted by the Pega case-management system.
const (
	EventTypeDepartmentChange    = "department_change"
	EventTypeEmployeeOnboarding  = "employee_onboarding"
	EventTypeEmployeeOffboarding = "employee_offboarding"
	EventTypeRoleChange          = "role_change"
	EventTypeApprovalRequest     = "approval_request"
	EventTypeRiskAlert           = "risk_alert"
)

// Event is one inbound Pega notification tracked through the processing
// lifecycle. id, received_at, case_id, event_type and payload are immutable
// after insertion; status, processed_at and processing_result are owned by
// the processing pipeline.
type Event struct {
	ID               int64       `json:"id" db:"id"`
	ReceivedAt       types.Time  `json:"received_at" db:"received_at"`
	CaseID           string      `json:"caseId" db:"case_id"`
	EventType        string      `json:"event" db:"event_type"`
	Payload          types.Map   `json:"payload" db:"payload"`
	Status           Status      `json:"status" db:"status"`
	ProcessedAt      *types.Time `json:"processed_at" db:"processed_at"`
	ProcessingResult types.Map   `json:"processing_result" db:"processing_result"`
}
