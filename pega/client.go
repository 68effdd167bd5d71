// Package pega is the outbound client for the Pega case-management REST API.
package pega

import (
	"context"

	"github.com/casebridge-io/casebridge/pkg/types"
)

// Client mutates and reads cases in the external Pega system. Handlers
// receive it as a capability; a nil Client means the system is not
// configured.
type Client interface {
	CreateCase(ctx context.Context, caseType string, data types.Map) (types.Map, error)
	GetCase(ctx context.Context, caseID string) (types.Map, error)
	UpdateCase(ctx context.Context, caseID string, data types.Map) (types.Map, error)
	AddNote(ctx context.Context, caseID string, note string) error
	ExecuteAction(ctx context.Context, caseID string, actionID string, data types.Map) error
}
