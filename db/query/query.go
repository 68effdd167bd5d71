package query

type Queryer interface {
	Limit() int64
	WhereMap() map[string]interface{}
	Orders() []*Order
}

type Query struct {
	limit  int64
	orders []*Order
}

func (q *Query) SetLimit(limit int64) {
	q.limit = limit
}

func (q *Query) Limit() int64 {
	return q.limit
}

func (q *Query) WhereMap() map[string]interface{} {
	return nil
}

func (q *Query) Orders() []*Order {
	return q.orders
}

func (q *Query) Order(column string, sort Sort) {
	q.orders = append(q.orders, &Order{column, sort})
}
