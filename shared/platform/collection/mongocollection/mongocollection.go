package mongocollection

import (
	"context"
	"regexp"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/shared/utils"
)

// DecodeFunc convierte un documento en la fila de dominio.
type DecodeFunc[T any] func(raw bson.Raw) (T, error)

// Schema describe la colección de Mongo que respalda el listado.
type Schema[T query.Record] struct {
	// Fields mapea nombre de campo de dominio -> clave bson. Lo que no esté aquí se ignora.
	Fields map[string]string
	Decode DecodeFunc[T]
}

// Collection traduce los predicados de listado a filtros de Mongo.
type Collection[T query.Record] struct {
	coll   *mongo.Collection
	schema Schema[T]
	conds  bson.A
	orders []query.SortKey
}

func New[T query.Record](coll *mongo.Collection, schema Schema[T]) Collection[T] {
	return Collection[T]{coll: coll, schema: schema}
}

func (c Collection[T]) clone() Collection[T] {
	c.conds = append(bson.A(nil), c.conds...)
	c.orders = append([]query.SortKey(nil), c.orders...)
	return c
}

func (c Collection[T]) key(field string) (string, bool) {
	k, ok := c.schema.Fields[field]
	return k, ok
}

// ---------------- Predicados ----------------

func (c Collection[T]) AddSearchPredicate(fields []string, term string) query.Collection[T] {
	pattern := regexp.QuoteMeta(term)

	or := bson.A{}
	for _, f := range fields {
		if k, ok := c.key(f); ok {
			or = append(or, bson.M{k: bson.M{"$regex": pattern, "$options": "i"}})
		}
	}
	if len(or) == 0 || term == "" {
		return c
	}

	next := c.clone()
	next.conds = append(next.conds, bson.M{"$or": or})
	return next
}

func (c Collection[T]) AddFilterPredicate(field string, value any) query.Collection[T] {
	k, ok := c.key(field)
	if !ok {
		return c
	}
	next := c.clone()
	next.conds = append(next.conds, bson.M{k: toBSON(value)})
	return next
}

func (c Collection[T]) OrderBy(field string, dir query.Direction) query.Collection[T] {
	if _, ok := c.key(field); !ok {
		return c
	}
	next := c.clone()
	next.orders = append(next.orders, query.SortKey{Field: field, Direction: dir})
	return next
}

// ---------------- Paginación ----------------

func (c Collection[T]) Paginate(ctx context.Context, perPage, page int) (query.OffsetPage[T], error) {
	filter := c.Filter(nil)
	opts := options.Find().SetSort(c.Sort())
	if perPage > 0 {
		offset, ok := query.PageOffset(perPage, page)
		if !ok {
			total, err := c.coll.CountDocuments(ctx, filter)
			if err != nil {
				return query.OffsetPage[T]{}, err
			}
			return query.OffsetPage[T]{Rows: []T{}, Total: total}, nil
		}
		opts.SetSkip(int64(offset)).SetLimit(int64(perPage))
	}

	rows, err := c.find(ctx, filter, opts)
	if err != nil {
		return query.OffsetPage[T]{}, err
	}
	if perPage <= 0 {
		return query.OffsetPage[T]{Rows: rows, Total: int64(len(rows))}, nil
	}

	total, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return query.OffsetPage[T]{}, err
	}
	return query.OffsetPage[T]{Rows: rows, Total: total}, nil
}

func (c Collection[T]) CursorPaginate(ctx context.Context, perPage int, after *query.Cursor) (query.CursorPage[T], error) {
	opts := options.Find().SetSort(c.Sort())
	if perPage > 0 {
		opts.SetLimit(int64(query.LookaheadLimit(perPage)))
	}

	rows, err := c.find(ctx, c.Filter(after), opts)
	if err != nil {
		return query.CursorPage[T]{}, err
	}
	if perPage <= 0 || len(rows) <= perPage {
		return query.CursorPage[T]{Rows: rows}, nil
	}

	rows = rows[:perPage]
	return query.CursorPage[T]{Rows: rows, Next: query.CursorFrom(rows[len(rows)-1], c.orders)}, nil
}

// ---------------- Filtros ----------------

// Filter combina los predicados y, si hay cursor válido, la condición keyset.
func (c Collection[T]) Filter(after *query.Cursor) bson.M {
	conds := append(bson.A(nil), c.conds...)
	if after != nil && after.Matches(c.orders) {
		conds = append(conds, c.keyset(after))
	}
	switch len(conds) {
	case 0:
		return bson.M{}
	case 1:
		return conds[0].(bson.M)
	default:
		return bson.M{"$and": conds}
	}
}

// Sort devuelve la especificación de orden en bson.
func (c Collection[T]) Sort() bson.D {
	sort := bson.D{}
	for _, o := range c.orders {
		k, _ := c.key(o.Field)
		dir := 1
		if o.Direction == query.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: k, Value: dir})
	}
	return sort
}

func (c Collection[T]) keyset(after *query.Cursor) bson.M {
	or := bson.A{}
	for i, o := range c.orders {
		and := bson.A{}
		for j := 0; j < i; j++ {
			k, _ := c.key(c.orders[j].Field)
			and = append(and, bson.M{k: toBSON(after.Values[j])})
		}
		op := utils.Ternary(o.Direction == query.Desc, "$lt", "$gt")
		k, _ := c.key(o.Field)
		and = append(and, bson.M{k: bson.M{op: toBSON(after.Values[i])}})
		or = append(or, bson.M{"$and": and})
	}
	return bson.M{"$or": or}
}

func (c Collection[T]) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		row, err := c.schema.Decode(cur.Current)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, cur.Err()
}

func toBSON(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		if d128, err := primitive.ParseDecimal128(d.String()); err == nil {
			return d128
		}
	}
	return v
}

var _ query.Collection[query.Record] = Collection[query.Record]{}
