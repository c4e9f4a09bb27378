package store

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memCollection is an in-memory Collection used by the store tests. It
// understands the exact query shapes the store emits: equality, $or with
// case-insensitive $regex, $gte/$lte ranges, $in membership, and the
// unwind/group/sort aggregation of CountByField.
type memCollection struct {
	mu   sync.Mutex
	docs []Record

	insertErr error
	findErr   error
	countErr  error
	updateErr error
	deleteErr error
	aggErr    error
}

func newMemCollection() *memCollection {
	return &memCollection{}
}

var _ Collection = (*memCollection)(nil)

func (m *memCollection) InsertOne(_ context.Context, doc Record) (primitive.ObjectID, error) {
	if m.insertErr != nil {
		return primitive.NilObjectID, m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	stored := doc.Clone()
	stored["_id"] = id
	m.docs = append(m.docs, stored)
	return id, nil
}

func (m *memCollection) InsertMany(_ context.Context, docs []Record) ([]primitive.ObjectID, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		id := primitive.NewObjectID()
		stored := doc.Clone()
		stored["_id"] = id
		m.docs = append(m.docs, stored)
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memCollection) FindOne(_ context.Context, filter bson.M) (Record, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if matchDoc(doc, filter) {
			return doc.Clone(), nil
		}
	}
	return nil, ErrNoDocument
}

func (m *memCollection) Find(_ context.Context, filter bson.M, opts FindOptions) ([]Record, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Record
	for _, doc := range m.docs {
		if matchDoc(doc, filter) {
			out = append(out, doc.Clone())
		}
	}

	if len(opts.Sort) > 0 {
		key := opts.Sort[0].Key
		desc := false
		if dir, isInt := opts.Sort[0].Value.(int); isInt && dir < 0 {
			desc = true
		}
		sort.SliceStable(out, func(i, j int) bool {
			less := lessValue(fieldValue(out[i], key), fieldValue(out[j], key))
			if desc {
				return !less && !equalValue(fieldValue(out[i], key), fieldValue(out[j], key))
			}
			return less
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(out)) {
			return nil, nil
		}
		out = out[opts.Skip:]
	}
	if opts.Limit > 0 && int64(len(out)) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memCollection) UpdateOne(_ context.Context, filter bson.M, set bson.M) (int64, error) {
	if m.updateErr != nil {
		return 0, m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if matchDoc(doc, filter) {
			for k, v := range set {
				doc[k] = v
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memCollection) DeleteOne(_ context.Context, filter bson.M) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, doc := range m.docs {
		if matchDoc(doc, filter) {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memCollection) CountDocuments(_ context.Context, filter bson.M) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, doc := range m.docs {
		if matchDoc(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (m *memCollection) Distinct(_ context.Context, field string, filter bson.M) ([]interface{}, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[interface{}]bool{}
	var out []interface{}
	add := func(v interface{}) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, doc := range m.docs {
		if !matchDoc(doc, filter) {
			continue
		}
		switch v := fieldValue(doc, field).(type) {
		case []string:
			for _, e := range v {
				add(e)
			}
		case []interface{}:
			for _, e := range v {
				add(e)
			}
		default:
			add(v)
		}
	}
	return out, nil
}

func (m *memCollection) Aggregate(_ context.Context, pipeline []bson.M) ([]Record, error) {
	if m.aggErr != nil {
		return nil, m.aggErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]Record, 0, len(m.docs))
	for _, doc := range m.docs {
		rows = append(rows, doc.Clone())
	}

	for _, stage := range pipeline {
		if stageArg, present := stage["$unwind"]; present {
			field := strings.TrimPrefix(stageArg.(string), "$")
			var next []Record
			for _, row := range rows {
				switch v := fieldValue(row, field).(type) {
				case []string:
					for _, e := range v {
						r := row.Clone()
						r[field] = e
						next = append(next, r)
					}
				case []interface{}:
					for _, e := range v {
						r := row.Clone()
						r[field] = e
						next = append(next, r)
					}
				default:
					next = append(next, row)
				}
			}
			rows = next
		}
		if stageArg, present := stage["$group"]; present {
			group := stageArg.(bson.M)
			field := strings.TrimPrefix(group["_id"].(string), "$")
			counts := map[interface{}]int{}
			var order []interface{}
			for _, row := range rows {
				key := fieldValue(row, field)
				if counts[key] == 0 {
					order = append(order, key)
				}
				counts[key]++
			}
			grouped := make([]Record, 0, len(order))
			for _, key := range order {
				grouped = append(grouped, Record{"_id": key, "count": counts[key]})
			}
			rows = grouped
		}
		if stageArg, present := stage["$sort"]; present {
			srt := stageArg.(bson.M)
			for key, dirI := range srt {
				desc := false
				if dir, isInt := dirI.(int); isInt && dir < 0 {
					desc = true
				}
				k := key
				sort.SliceStable(rows, func(i, j int) bool {
					less := lessValue(rows[i][k], rows[j][k])
					if desc {
						return !less && !equalValue(rows[i][k], rows[j][k])
					}
					return less
				})
			}
		}
	}
	return rows, nil
}

// fieldValue resolves dotted paths through nested records.
func fieldValue(doc Record, field string) interface{} {
	parts := strings.Split(field, ".")
	var cur interface{} = map[string]interface{}(doc)
	for _, part := range parts {
		m, isMap := cur.(map[string]interface{})
		if !isMap {
			if r, isRec := cur.(Record); isRec {
				m = r
			} else {
				return nil
			}
		}
		cur = m[part]
	}
	return cur
}

func matchDoc(doc Record, query bson.M) bool {
	for key, cond := range query {
		if key == "$or" {
			clauses, _ := cond.([]bson.M)
			matched := false
			for _, clause := range clauses {
				if matchDoc(doc, clause) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
			continue
		}
		if !matchValue(fieldValue(doc, key), cond) {
			return false
		}
	}
	return true
}

func matchValue(val interface{}, cond interface{}) bool {
	ops, isOps := cond.(bson.M)
	if !isOps {
		return equalOrContains(val, cond)
	}
	for op, arg := range ops {
		switch op {
		case "$regex":
			pattern, _ := arg.(string)
			if opts, _ := ops["$options"].(string); strings.Contains(opts, "i") {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return false
			}
			s, isStr := val.(string)
			if !isStr || !re.MatchString(s) {
				return false
			}
		case "$options":
			// handled with $regex
		case "$gte":
			if !cmpGTE(val, arg) {
				return false
			}
		case "$lte":
			if !cmpGTE(arg, val) {
				return false
			}
		case "$in":
			if !inMembership(val, arg) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// equalOrContains applies equality, treating array document values as
// "contains" the way the document database does.
func equalOrContains(val interface{}, want interface{}) bool {
	switch v := val.(type) {
	case []string:
		for _, e := range v {
			if equalValue(e, want) {
				return true
			}
		}
		return false
	case []interface{}:
		for _, e := range v {
			if equalValue(e, want) {
				return true
			}
		}
		return false
	default:
		return equalValue(val, want)
	}
}

func inMembership(val interface{}, arg interface{}) bool {
	var candidates []interface{}
	switch a := arg.(type) {
	case []string:
		for _, s := range a {
			candidates = append(candidates, s)
		}
	case []interface{}:
		candidates = a
	default:
		return false
	}
	for _, cand := range candidates {
		if equalOrContains(val, cand) {
			return true
		}
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

func equalValue(a, b interface{}) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Equal(bt)
		}
		return false
	}
	return a == b
}

// cmpGTE reports a >= b.
func cmpGTE(a, b interface{}) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af >= bf
		}
		return false
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return !at.Before(bt)
		}
		return false
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	return aok && bok && as >= bs
}

func lessValue(a, b interface{}) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af < bf
		}
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Before(bt)
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	return false
}
