// Package intake accepts raw webhook bodies, persists them and schedules
// processing.
package intake

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/casebridge-io/casebridge/db"
	"github.com/casebridge-io/casebridge/db/entities"
	"github.com/casebridge-io/casebridge/pipeline"
	"github.com/casebridge-io/casebridge/pkg/errs"
	"github.com/casebridge-io/casebridge/pkg/types"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type Service struct {
	log       *zap.SugaredLogger
	db        *db.DB
	scheduler pipeline.Scheduler
}

func NewService(db *db.DB, scheduler pipeline.Scheduler) *Service {
	return &Service{
		log:       zap.S(),
		db:        db,
		scheduler: scheduler,
	}
}

// Accept validates and persists one webhook delivery, then schedules it.
// The returned event is in received status; processing happens after the
// intake response is already on the wire.
func (s *Service) Accept(ctx context.Context, body []byte) (*entities.Event, error) {
	if !gjson.ValidBytes(body) {
		return nil, errs.NewValidationError("invalid JSON")
	}

	caseID := stringValue(gjson.GetBytes(body, "caseId"))
	eventType := stringValue(gjson.GetBytes(body, "event"))

	fields := map[string]interface{}{}
	if caseID == "" {
		fields["caseId"] = "required field missing"
	}
	if eventType == "" {
		fields["event"] = "required field missing"
	}
	if len(fields) > 0 {
		return nil, errs.NewValidationFieldsError("validation failed", fields)
	}

	var payload types.Map
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errs.NewValidationError("invalid JSON")
	}

	event := &entities.Event{
		ReceivedAt: types.NewTime(time.Now()),
		CaseID:     caseID,
		EventType:  eventType,
		Payload:    payload,
		Status:     entities.StatusReceived,
	}
	if err := s.db.Events.Insert(ctx, event); err != nil {
		return nil, err
	}

	s.log.Infow("[intake] event accepted",
		"id", event.ID,
		"case_id", event.CaseID,
		"event", event.EventType,
	)
	s.scheduler.Schedule(event.ID)
	return event, nil
}

// stringValue returns the trimmed string value, or "" when the field is
// absent or not a JSON string.
func stringValue(result gjson.Result) string {
	if result.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(result.Str)
}
