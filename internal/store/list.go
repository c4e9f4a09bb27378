package store

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListOptions controls FindAll. The zero value means page 1, ten records,
// newest-first by creation time, no filter and no search.
type ListOptions struct {
	Page  int
	Limit int

	// SortField with SortDesc; empty SortField selects createdAt descending.
	SortField string
	SortDesc  bool

	// Filter holds exact-match or range constraints combined with AND.
	Filter bson.M

	// Search, when non-empty and the schema declares search fields, adds a
	// case-insensitive pattern OR across those fields.
	Search string
}

func (o *ListOptions) normalize() {
	if o.Page < 1 {
		o.Page = defaultPage
	}
	if o.Limit < 1 {
		o.Limit = defaultLimit
	}
	if o.SortField == "" {
		o.SortField = "createdAt"
		o.SortDesc = true
	}
}

// buildQuery combines the exact-match filter with the search OR clause. Both
// the page fetch and the count use this same query so the pagination metadata
// stays consistent with the page contents.
func (s *Store) buildQuery(opts ListOptions) bson.M {
	query := bson.M{}
	for k, v := range opts.Filter {
		query[k] = v
	}
	if opts.Search != "" && len(s.schema.SearchFields) > 0 {
		or := make([]bson.M, 0, len(s.schema.SearchFields))
		for _, field := range s.schema.SearchFields {
			or = append(or, bson.M{field: bson.M{"$regex": opts.Search, "$options": "i"}})
		}
		query["$or"] = or
	}
	return query
}

// FindAll returns one page of matching records plus pagination metadata. The
// windowed fetch and the total count are independent reads and run
// concurrently.
func (s *Store) FindAll(ctx context.Context, opts ListOptions) Result {
	opts.normalize()
	query := s.buildQuery(opts)

	dir := 1
	if opts.SortDesc {
		dir = -1
	}
	findOpts := FindOptions{
		Sort:  bson.D{{Key: opts.SortField, Value: dir}},
		Skip:  int64(opts.Page-1) * int64(opts.Limit),
		Limit: int64(opts.Limit),
	}

	var (
		wg       sync.WaitGroup
		records  []Record
		total    int64
		findErr  error
		countErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		records, findErr = s.coll.Find(ctx, query, findOpts)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.coll.CountDocuments(ctx, query)
	}()
	wg.Wait()

	if findErr != nil {
		s.logErr("findAll", findErr)
		return unexpected(findErr, fmt.Sprintf("Erreur lors de la lecture de %s", s.schema.Name))
	}
	if countErr != nil {
		s.logErr("findAll", countErr)
		return unexpected(countErr, fmt.Sprintf("Erreur lors de la lecture de %s", s.schema.Name))
	}

	if records == nil {
		records = []Record{}
	}

	limit := int64(opts.Limit)
	totalPages := (total + limit - 1) / limit
	res := ok(records, fmt.Sprintf("%ss récupérés avec succès", s.schema.Name))
	res.Pagination = &Pagination{
		Page:       opts.Page,
		Limit:      opts.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(opts.Page)*limit < total,
		HasPrev:    opts.Page > 1,
	}
	return res
}
