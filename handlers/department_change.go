package handlers

import (
	"context"
	"fmt"
	"slices"

	"github.com/casebridge-io/casebridge/db/entities"
	"github.com/casebridge-io/casebridge/dispatcher"
	"github.com/casebridge-io/casebridge/pega"
	"github.com/casebridge-io/casebridge/pkg/types"
)

var highRiskDepartments = []string{"Finance", "Security", "IT", "Legal"}

const highRiskThreshold = 7

// DepartmentChange runs a risk analysis on department moves and pushes a
// note back to Pega when the risk score exceeds the threshold.
func DepartmentChange(ctx context.Context, event *entities.Event, client pega.Client) (dispatcher.Outcome, error) {
	payload := event.Payload
	employeeID := stringField(payload, "employeeId")
	oldDept := stringField(payload, "oldDepartment")
	newDept := stringField(payload, "newDepartment")

	actions := make([]interface{}, 0)

	if isHighRiskDepartment(oldDept) || isHighRiskDepartment(newDept) {
		score := riskScore(payload)
		actions = append(actions, fmt.Sprintf("Risk analysis completed. Score: %d", score))

		if score > highRiskThreshold && client != nil {
			note := fmt.Sprintf("HIGH RISK: Employee %s department change requires additional approval", employeeID)
			if err := client.AddNote(ctx, event.CaseID, note); err != nil {
				return dispatcher.Outcome{}, err
			}
			actions = append(actions, "Risk alert sent to Pega")
		}
	}

	actions = append(actions,
		fmt.Sprintf("Updated employee directory for %s", employeeID),
		fmt.Sprintf("Updated badge access for department %s", newDept),
		"Email signature updated",
	)

	return dispatcher.Processed(types.Map{
		"status":            "processed",
		"event_type":        entities.EventTypeDepartmentChange,
		"actions_taken":     actions,
		"employee_id":       employeeID,
		"department_change": fmt.Sprintf("%s -> %s", oldDept, newDept),
	}), nil
}

func isHighRiskDepartment(department string) bool {
	return slices.Contains(highRiskDepartments, department)
}

// riskScore is capped at 10.
func riskScore(payload types.Map) int {
	score := 0
	if boolField(payload, "hasFinancialAccess") {
		score += 3
	}
	if boolField(payload, "hasAdminRights") {
		score += 4
	}
	if boolField(payload, "accessToSensitiveData") {
		score += 3
	}
	return min(score, 10)
}
