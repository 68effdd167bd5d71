package dao

import (
	"context"
	"time"

	"github.com/casebridge-io/casebridge/db/entities"
	"github.com/casebridge-io/casebridge/db/query"
	"github.com/casebridge-io/casebridge/pkg/errs"
	"github.com/casebridge-io/casebridge/pkg/types"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// TypeCount is a per-event-type aggregate.
type TypeCount struct {
	Event string `json:"event" db:"event_type"`
	Count int64  `json:"count" db:"count"`
}

// StatusCount is a per-status aggregate.
type StatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"count"`
}

// DayCount is a per-day aggregate.
type DayCount struct {
	Date  string `json:"date" db:"day"`
	Count int64  `json:"count" db:"count"`
}

type EventDAO interface {
	Insert(ctx context.Context, event *entities.Event) error
	Get(ctx context.Context, id int64) (*entities.Event, error)
	List(ctx context.Context, q query.Queryer) ([]*entities.Event, error)
	Count(ctx context.Context, where map[string]interface{}) (int64, error)

	// MarkProcessing transitions a received event into processing. It
	// reports false without error when the event is not in received state,
	// so two schedulers racing on the same id cannot both win.
	MarkProcessing(ctx context.Context, id int64) (bool, error)

	// Terminate writes the terminal status, processed_at and
	// processing_result in a single statement.
	Terminate(ctx context.Context, id int64, status entities.Status, result types.Map) error

	// ResetForReprocess puts a failed or received event back to received and
	// clears processed_at and processing_result. The eligibility check and
	// the reset are one atomic statement; it reports false when the current
	// status is not eligible.
	ResetForReprocess(ctx context.Context, id int64) (bool, error)

	CountSince(ctx context.Context, since time.Time) (int64, error)
	EventTypeBreakdown(ctx context.Context, since time.Time) ([]*TypeCount, error)
	StatusBreakdown(ctx context.Context, since time.Time) (map[string]int64, error)
	DailyTrend(ctx context.Context, since time.Time) ([]*DayCount, error)
}

type eventDao struct {
	*DAO[entities.Event]
}

func NewEventDao(db *sqlx.DB) EventDAO {
	return &eventDao{
		DAO: NewDAO[entities.Event]("events", db),
	}
}

func (dao *eventDao) Insert(ctx context.Context, event *entities.Event) error {
	statement, args := builder.Insert(dao.table).
		Columns("received_at", "case_id", "event_type", "payload", "status").
		Values(event.ReceivedAt, event.CaseID, event.EventType, event.Payload, event.Status).
		Suffix("RETURNING *").
		MustSql()
	dao.debugSQL(statement, args)
	err := dao.db.Unsafe().QueryRowxContext(ctx, statement, args...).StructScan(event)
	if err != nil {
		return errs.NewStorageError(err)
	}
	return nil
}

func (dao *eventDao) MarkProcessing(ctx context.Context, id int64) (bool, error) {
	statement, args := builder.Update(dao.table).
		Set("status", entities.StatusProcessing).
		Where(sq.Eq{"id": id, "status": entities.StatusReceived}).
		MustSql()
	dao.debugSQL(statement, args)
	result, err := dao.db.ExecContext(ctx, statement, args...)
	if err != nil {
		return false, errs.NewStorageError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, errs.NewStorageError(err)
	}
	return rows > 0, nil
}

func (dao *eventDao) Terminate(ctx context.Context, id int64, status entities.Status, result types.Map) error {
	statement, args := builder.Update(dao.table).
		Set("status", status).
		Set("processed_at", types.NewTime(time.Now())).
		Set("processing_result", result).
		Where(sq.Eq{"id": id}).
		MustSql()
	dao.debugSQL(statement, args)
	if _, err := dao.db.ExecContext(ctx, statement, args...); err != nil {
		return errs.NewStorageError(err)
	}
	return nil
}

func (dao *eventDao) ResetForReprocess(ctx context.Context, id int64) (bool, error) {
	statement, args := builder.Update(dao.table).
		Set("status", entities.StatusReceived).
		Set("processed_at", nil).
		Set("processing_result", nil).
		Where(sq.Eq{
			"id":     id,
			"status": []entities.Status{entities.StatusFailed, entities.StatusReceived},
		}).
		MustSql()
	dao.debugSQL(statement, args)
	result, err := dao.db.ExecContext(ctx, statement, args...)
	if err != nil {
		return false, errs.NewStorageError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, errs.NewStorageError(err)
	}
	return rows > 0, nil
}

func (dao *eventDao) CountSince(ctx context.Context, since time.Time) (total int64, err error) {
	statement, args := builder.Select("COUNT(*)").From(dao.table).
		Where(sq.GtOrEq{"received_at": types.NewTime(since)}).
		MustSql()
	dao.debugSQL(statement, args)
	err = dao.db.GetContext(ctx, &total, statement, args...)
	return
}

func (dao *eventDao) EventTypeBreakdown(ctx context.Context, since time.Time) (list []*TypeCount, err error) {
	statement, args := builder.Select("event_type", "COUNT(*) AS count").From(dao.table).
		Where(sq.GtOrEq{"received_at": types.NewTime(since)}).
		GroupBy("event_type").
		OrderBy("count DESC").
		MustSql()
	dao.debugSQL(statement, args)
	list = make([]*TypeCount, 0)
	err = dao.db.SelectContext(ctx, &list, statement, args...)
	return
}

func (dao *eventDao) StatusBreakdown(ctx context.Context, since time.Time) (map[string]int64, error) {
	statement, args := builder.Select("status", "COUNT(*) AS count").From(dao.table).
		Where(sq.GtOrEq{"received_at": types.NewTime(since)}).
		GroupBy("status").
		MustSql()
	dao.debugSQL(statement, args)
	list := make([]*StatusCount, 0)
	if err := dao.db.SelectContext(ctx, &list, statement, args...); err != nil {
		return nil, err
	}
	breakdown := make(map[string]int64, len(list))
	for _, row := range list {
		breakdown[row.Status] = row.Count
	}
	return breakdown, nil
}

func (dao *eventDao) DailyTrend(ctx context.Context, since time.Time) (list []*DayCount, err error) {
	statement, args := builder.Select("strftime('%Y-%m-%d', received_at) AS day", "COUNT(*) AS count").
		From(dao.table).
		Where(sq.GtOrEq{"received_at": types.NewTime(since)}).
		GroupBy("day").
		OrderBy("day ASC").
		MustSql()
	dao.debugSQL(statement, args)
	list = make([]*DayCount, 0)
	err = dao.db.SelectContext(ctx, &list, statement, args...)
	return
}
