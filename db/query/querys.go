package query

type EventQuery struct {
	Query

	EventType *string
	Status    *string
	CaseID    *string
}

func (q *EventQuery) WhereMap() map[string]interface{} {
	maps := make(map[string]interface{})
	if q.EventType != nil {
		maps["event_type"] = *q.EventType
	}
	if q.Status != nil {
		maps["status"] = *q.Status
	}
	if q.CaseID != nil {
		maps["case_id"] = *q.CaseID
	}
	return maps
}
