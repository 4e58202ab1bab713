package repositories

import (
	"fmt"
	"strings"
	"time"
)

// queryBuilder собирает параметризованные WHERE/ORDER/LIMIT-фрагменты для
// всех списочных выборок. Значения уходят только в args ($n-плейсхолдеры);
// в текст запроса попадают лишь имена колонок из закрытых allow-list'ов.
type queryBuilder struct {
	conds []string
	args  []interface{}
	n     int
}

// newListQuery всегда начинается с tenant-фильтра: ни одна списочная
// выборка не выполняется без него.
func newListQuery(tenantCol string, tenantID int64) *queryBuilder {
	qb := &queryBuilder{}
	qb.conds = append(qb.conds, fmt.Sprintf("%s = $%d", tenantCol, qb.next()))
	qb.args = append(qb.args, tenantID)
	return qb
}

func (qb *queryBuilder) next() int {
	qb.n++
	return qb.n
}

// Eq добавляет exact-match условие, только если значение задано.
func (qb *queryBuilder) Eq(col string, val interface{}) *queryBuilder {
	switch v := val.(type) {
	case nil:
		return qb
	case *int64:
		if v == nil {
			return qb
		}
		val = *v
	}
	qb.conds = append(qb.conds, fmt.Sprintf("%s = $%d", col, qb.next()))
	qb.args = append(qb.args, val)
	return qb
}

// Range — включающие границы по дате/времени.
func (qb *queryBuilder) Range(col string, from, to *time.Time) *queryBuilder {
	if from != nil {
		qb.conds = append(qb.conds, fmt.Sprintf("%s >= $%d", col, qb.next()))
		qb.args = append(qb.args, *from)
	}
	if to != nil {
		qb.conds = append(qb.conds, fmt.Sprintf("%s <= $%d", col, qb.next()))
		qb.args = append(qb.args, *to)
	}
	return qb
}

// Search — регистронезависимый частичный матч по фиксированному списку
// колонок, OR-комбинация, один общий wildcard-параметр.
func (qb *queryBuilder) Search(term string, cols ...string) *queryBuilder {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return qb
	}
	p := qb.next()
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", c, p))
	}
	qb.conds = append(qb.conds, "("+strings.Join(parts, " OR ")+")")
	qb.args = append(qb.args, "%"+term+"%")
	return qb
}

func (qb *queryBuilder) Where() string {
	return " WHERE " + strings.Join(qb.conds, " AND ")
}

// OrderBy выбирает колонку из allow-list; незнакомое поле заменяется
// дефолтным, клиентская строка никогда не попадает в текст запроса.
func (qb *queryBuilder) OrderBy(allowed map[string]string, field, order, def string) string {
	col, ok := allowed[field]
	if !ok {
		col = allowed[def]
	}
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, order)
}

// Limit добавляет LIMIT/OFFSET как параметры.
func (qb *queryBuilder) Limit(limit, offset int) string {
	l := qb.next()
	o := qb.next()
	qb.args = append(qb.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", l, o)
}

func (qb *queryBuilder) Args() []interface{} { return qb.args }

// CountArgs — аргументы без хвостовых limit/offset, для второго
// COUNT(*)-запроса по тем же условиям.
func (qb *queryBuilder) CountArgs() []interface{} {
	if len(qb.args) >= 2 {
		return qb.args[:len(qb.args)-2]
	}
	return qb.args
}
