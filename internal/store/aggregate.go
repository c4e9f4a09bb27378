package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// CountByField groups records by the given field and returns per-value counts
// sorted descending. Array-valued fields are unwound first so each element
// counts once.
func (s *Store) CountByField(ctx context.Context, field string, unwind bool) Result {
	pipeline := make([]bson.M, 0, 3)
	if unwind {
		pipeline = append(pipeline, bson.M{"$unwind": "$" + field})
	}
	pipeline = append(pipeline,
		bson.M{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"count": -1}},
	)

	rows, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		s.logErr("countByField", err)
		return unexpected(err, fmt.Sprintf("Erreur lors des statistiques de %s", s.schema.Name))
	}
	if rows == nil {
		rows = []Record{}
	}
	return ok(rows, fmt.Sprintf("Statistiques de %s par %s récupérées", s.schema.Name, field))
}

// DistinctNonEmpty lists the distinct values of a field, dropping null and
// empty entries.
func (s *Store) DistinctNonEmpty(ctx context.Context, field string) Result {
	values, err := s.coll.Distinct(ctx, field, bson.M{})
	if err != nil {
		s.logErr("distinct", err)
		return unexpected(err, fmt.Sprintf("Erreur lors de la lecture de %s", s.schema.Name))
	}

	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		if str, isStr := v.(string); isStr && str == "" {
			continue
		}
		out = append(out, v)
	}
	return ok(out, fmt.Sprintf("Valeurs de %s récupérées", field))
}
