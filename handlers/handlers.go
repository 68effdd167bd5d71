// Package handlers contains the per-event-type business logic invoked by
// the dispatcher.
package handlers

import (
	"github.com/casebridge-io/casebridge/db/entities"
	"github.com/casebridge-io/casebridge/dispatcher"
	"github.com/casebridge-io/casebridge/pkg/types"
)

// RegisterAll registers the built-in handlers. Event types without a
// handler (approval_request, risk_alert) fall through to the dispatcher's
// Ignored branch.
func RegisterAll(d *dispatcher.Dispatcher) {
	d.Register(entities.EventTypeDepartmentChange, dispatcher.HandlerFunc(DepartmentChange))
	d.Register(entities.EventTypeEmployeeOnboarding, dispatcher.HandlerFunc(EmployeeOnboarding))
	d.Register(entities.EventTypeEmployeeOffboarding, dispatcher.HandlerFunc(EmployeeOffboarding))
	d.Register(entities.EventTypeRoleChange, dispatcher.HandlerFunc(RoleChange))
}

func stringField(payload types.Map, key string) string {
	v, _ := payload[key].(string)
	return v
}

func boolField(payload types.Map, key string) bool {
	v, _ := payload[key].(bool)
	return v
}
