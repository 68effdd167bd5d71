package api

import (
	"net/http"
	"time"

	"github.com/casebridge-io/casebridge/db/dao"
	"github.com/casebridge-io/casebridge/pkg/types"
)

type metricsResponse struct {
	Since   types.Time       `json:"since"`
	Total   int64            `json:"total"`
	ByEvent []*dao.TypeCount `json:"by_event"`
}

func (api *API) Metrics(w http.ResponseWriter, r *http.Request) {
	since := time.Now().AddDate(0, 0, -7)

	total, err := api.db.Events.CountSince(r.Context(), since)
	if err != nil {
		api.error(w, err)
		return
	}
	byEvent, err := api.db.Events.EventTypeBreakdown(r.Context(), since)
	if err != nil {
		api.error(w, err)
		return
	}

	api.json(200, w, metricsResponse{
		Since:   types.NewTime(since),
		Total:   total,
		ByEvent: byEvent,
	})
}

type dashboardResponse struct {
	Period          string           `json:"period"`
	TotalEvents     int64            `json:"total_events"`
	StatusBreakdown map[string]int64 `json:"status_breakdown"`
	EventBreakdown  map[string]int64 `json:"event_breakdown"`
	DailyTrend      []*dao.DayCount  `json:"daily_trend"`
	PegaConnection  bool             `json:"pega_connection"`
}

// Dashboard aggregates the trailing 24 hours plus a 7-day daily trend.
// Days without events appear in the trend with a zero count.
func (api *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.AddDate(0, 0, -6).Truncate(24 * time.Hour)

	total, err := api.db.Events.CountSince(r.Context(), dayAgo)
	if err != nil {
		api.error(w, err)
		return
	}
	statuses, err := api.db.Events.StatusBreakdown(r.Context(), dayAgo)
	if err != nil {
		api.error(w, err)
		return
	}
	byType, err := api.db.Events.EventTypeBreakdown(r.Context(), dayAgo)
	if err != nil {
		api.error(w, err)
		return
	}
	trend, err := api.db.Events.DailyTrend(r.Context(), weekAgo)
	if err != nil {
		api.error(w, err)
		return
	}

	events := make(map[string]int64, len(byType))
	for _, row := range byType {
		events[row.Event] = row.Count
	}

	api.json(200, w, dashboardResponse{
		Period:          "24h",
		TotalEvents:     total,
		StatusBreakdown: statuses,
		EventBreakdown:  events,
		DailyTrend:      fillTrend(now, trend),
		PegaConnection:  api.client != nil,
	})
}

// fillTrend expands the sparse per-day counts into exactly seven entries,
// oldest first.
func fillTrend(now time.Time, trend []*dao.DayCount) []*dao.DayCount {
	counts := make(map[string]int64, len(trend))
	for _, row := range trend {
		counts[row.Date] = row.Count
	}

	days := make([]*dao.DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).UTC().Format("2006-01-02")
		days = append(days, &dao.DayCount{Date: date, Count: counts[date]})
	}
	return days
}
