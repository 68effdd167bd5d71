package dao

import (
	"context"
	"database/sql"
	"errors"

	"github.com/casebridge-io/casebridge/db/query"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var ErrNoRows = sql.ErrNoRows

// sqlite builds statements with '?' placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// DAO provides generic read access over a single table.
type DAO[T any] struct {
	log   *zap.SugaredLogger
	db    *sqlx.DB
	table string
}

func NewDAO[T any](table string, db *sqlx.DB) *DAO[T] {
	dao := DAO[T]{
		log:   zap.S(),
		db:    db,
		table: table,
	}
	return &dao
}

func (dao *DAO[T]) debugSQL(statement string, args []interface{}) {
	dao.log.Debugf("[dao] execute: %s %v", statement, args)
}

func (dao *DAO[T]) Get(ctx context.Context, id int64) (entity *T, err error) {
	statement, args := builder.Select("*").From(dao.table).Where(sq.Eq{"id": id}).MustSql()
	dao.debugSQL(statement, args)
	entity = new(T)
	err = dao.db.Unsafe().GetContext(ctx, entity, statement, args...)
	if errors.Is(err, ErrNoRows) {
		return nil, nil
	}
	return
}

func (dao *DAO[T]) Count(ctx context.Context, where map[string]interface{}) (total int64, err error) {
	b := builder.Select("COUNT(*)").From(dao.table)
	if len(where) > 0 {
		b = b.Where(where)
	}
	statement, args := b.MustSql()
	dao.debugSQL(statement, args)
	err = dao.db.GetContext(ctx, &total, statement, args...)
	return
}

func (dao *DAO[T]) List(ctx context.Context, q query.Queryer) (list []*T, err error) {
	b := builder.Select("*").From(dao.table)
	where := q.WhereMap()
	if len(where) > 0 {
		b = b.Where(where)
	}
	if q.Limit() != 0 {
		b = b.Limit(uint64(q.Limit()))
	}
	for _, order := range q.Orders() {
		b = b.OrderBy(order.String())
	}
	statement, args := b.MustSql()
	dao.debugSQL(statement, args)
	list = make([]*T, 0)
	err = dao.db.Unsafe().SelectContext(ctx, &list, statement, args...)
	return
}
