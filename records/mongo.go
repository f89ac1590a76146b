package records

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	_ Store  = (*MongoStore)(nil)
	_ Seeder = (*MongoStore)(nil)
)

// MongoStore maps each table onto a collection of the same name. Integer ids
// come from a counters collection keyed by table name.
type MongoStore struct {
	db       *mongo.Database
	counters *mongo.Collection
}

func NewMongoStore(db *mongo.Database, countersCollection string) *MongoStore {
	return &MongoStore{db: db, counters: db.Collection(countersCollection)}
}

func (s *MongoStore) Fetch(ctx context.Context, table string, q Query) ([]Record, error) {
	filter := bson.M{}
	for _, c := range q.Where {
		if err := checkOperator(c); err != nil {
			return nil, storeErr("fetch", table, err)
		}
		if len(c.Values) == 1 {
			filter[c.FieldName] = c.Values[0]
		} else {
			filter[c.FieldName] = bson.M{"$in": c.Values}
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: FieldID, Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cursor, err := s.db.Collection(table).Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("fetch", table, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeErr("fetch", table, err)
	}

	out := make([]Record, 0, len(docs))
	for _, d := range docs {
		delete(d, "_id")
		out = append(out, Record(normalize(map[string]any(d)).(map[string]any)))
	}
	return out, nil
}

func (s *MongoStore) CreateRecord(ctx context.Context, table string, payloads ...Record) ([]int64, error) {
	ids := make([]int64, 0, len(payloads))
	for _, p := range payloads {
		id, err := s.nextID(ctx, table)
		if err != nil {
			return ids, storeErr("create", table, err)
		}
		doc := bson.M{}
		for k, v := range p {
			doc[k] = v
		}
		doc[FieldID] = id
		if _, err := s.db.Collection(table).InsertOne(ctx, doc); err != nil {
			return ids, storeErr("create", table, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MongoStore) DeleteRecord(ctx context.Context, table string, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.Collection(table).DeleteMany(ctx, bson.M{FieldID: bson.M{"$in": ids}})
	if err != nil {
		return storeErr("delete", table, err)
	}
	return nil
}

// Seed inserts recs only when the collection is empty.
func (s *MongoStore) Seed(ctx context.Context, table string, recs []Record) error {
	coll := s.db.Collection(table)
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return storeErr("seed", table, err)
	}
	if count > 0 || len(recs) == 0 {
		return nil
	}

	var maxID int64
	docs := make([]any, 0, len(recs))
	for _, r := range recs {
		doc := bson.M{}
		for k, v := range r {
			doc[k] = v
		}
		if id, ok := r.ID(); ok {
			doc[FieldID] = id
			if id > maxID {
				maxID = id
			}
		}
		docs = append(docs, doc)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return storeErr("seed", table, err)
	}

	_, err = s.counters.UpdateOne(ctx,
		bson.M{"_id": table},
		bson.M{"$max": bson.M{"seq": maxID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return storeErr("seed", table, err)
	}
	return nil
}

func (s *MongoStore) nextID(ctx context.Context, table string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": table},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	return counter.Seq, err
}

func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		return normalize(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case bson.D:
		return normalize(map[string]any(t.Map()))
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	}
	return v
}
