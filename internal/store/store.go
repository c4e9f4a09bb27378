// Package store implements the generic entity store: one CRUD and query
// engine shared by every collection, parameterized by a per-entity Schema.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fretops/fretops-api/pkg/helpers"
)

// Store is a configuration-parameterized CRUD engine over one collection.
type Store struct {
	coll   Collection
	schema Schema
	logger *logrus.Logger
	now    func() time.Time
}

func New(coll Collection, schema Schema, logger *logrus.Logger) *Store {
	return &Store{coll: coll, schema: schema, logger: logger, now: time.Now}
}

// Name returns the entity label the store was configured with.
func (s *Store) Name() string { return s.schema.Name }

// SearchFields returns the schema's free-text search field list.
func (s *Store) SearchFields() []string { return s.schema.SearchFields }

// Collection exposes the underlying handle for entity-specific queries built
// on top of the generic store.
func (s *Store) Collection() Collection { return s.coll }

func (s *Store) logErr(op string, err error) {
	if s.logger != nil && err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{"entity": s.schema.Name, "op": op}).Error("store operation failed")
	}
}

func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// Create validates, stamps and persists one record, then reads the hydrated
// document back; the insert result is not trusted to carry the full record.
func (s *Store) Create(ctx context.Context, data Record) Result {
	if errs := s.validate(data, false); len(errs) > 0 {
		return validationFailed(errs, fmt.Sprintf("Erreur lors de la création de %s", s.schema.Name))
	}

	doc := data.Clone()
	now := s.now().UTC()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	if pw, found := doc["password"].(string); found && pw != "" {
		hash, err := helpers.HashPassword(pw)
		if err != nil {
			s.logErr("create", err)
			return unexpected(err, fmt.Sprintf("Erreur lors de la création de %s", s.schema.Name))
		}
		doc["password"] = hash
	}

	id, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		s.logErr("create", err)
		return unexpected(err, fmt.Sprintf("Erreur lors de la création de %s", s.schema.Name))
	}

	created, err := s.coll.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		// A delete racing the insert can make the read-back miss; surfaced
		// as an unexpected failure rather than guarded.
		s.logErr("create", err)
		return unexpected(err, fmt.Sprintf("Erreur lors de la création de %s", s.schema.Name))
	}

	return ok(created, fmt.Sprintf("%s créé avec succès", s.schema.Name))
}

// FindByID returns one record. A malformed identifier is rejected before any
// storage round-trip.
func (s *Store) FindByID(ctx context.Context, id string) Result {
	oid, valid := parseID(id)
	if !valid {
		return fail(CodeInvalidIdentifier, "Format d'ID invalide")
	}

	rec, err := s.coll.FindOne(ctx, bson.M{"_id": oid})
	if err == ErrNoDocument {
		return fail(CodeNotFound, fmt.Sprintf("%s non trouvé", s.schema.Name))
	}
	if err != nil {
		s.logErr("findById", err)
		return unexpected(err, fmt.Sprintf("Erreur lors de la lecture de %s", s.schema.Name))
	}

	return ok(rec, fmt.Sprintf("%s trouvé", s.schema.Name))
}

// Update merges the supplied fields over the existing record. Required-field
// presence is not enforced (partial updates), the identifier is immutable and
// updatedAt is refreshed. An empty payload is accepted and only bumps the
// timestamp.
func (s *Store) Update(ctx context.Context, id string, data Record) Result {
	oid, valid := parseID(id)
	if !valid {
		return fail(CodeInvalidIdentifier, "Format d'ID invalide")
	}

	if errs := s.validate(data, true); len(errs) > 0 {
		return validationFailed(errs, "Données invalides")
	}

	upd := data.Clone()
	delete(upd, "_id")
	delete(upd, "id")
	upd["updatedAt"] = s.now().UTC()

	if pw, found := upd["password"].(string); found && pw != "" {
		hash, err := helpers.HashPassword(pw)
		if err != nil {
			s.logErr("update", err)
			return unexpected(err, fmt.Sprintf("Erreur lors de la mise à jour de %s", s.schema.Name))
		}
		upd["password"] = hash
	}

	matched, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M(upd))
	if err != nil {
		s.logErr("update", err)
		return unexpected(err, fmt.Sprintf("Erreur lors de la mise à jour de %s", s.schema.Name))
	}
	if matched == 0 {
		return fail(CodeNotFound, fmt.Sprintf("%s non trouvé", s.schema.Name))
	}

	updated, err := s.coll.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		s.logErr("update", err)
		return unexpected(err, fmt.Sprintf("Erreur lors de la mise à jour de %s", s.schema.Name))
	}

	return ok(updated, fmt.Sprintf("%s mis à jour avec succès", s.schema.Name))
}

// Delete removes the record permanently; there is no tombstone.
func (s *Store) Delete(ctx context.Context, id string) Result {
	oid, valid := parseID(id)
	if !valid {
		return fail(CodeInvalidIdentifier, "Format d'ID invalide")
	}

	deleted, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		s.logErr("delete", err)
		return unexpected(err, fmt.Sprintf("Erreur lors de la suppression de %s", s.schema.Name))
	}
	if deleted == 0 {
		return fail(CodeNotFound, fmt.Sprintf("%s non trouvé", s.schema.Name))
	}

	return Result{Success: true, Message: fmt.Sprintf("%s supprimé avec succès", s.schema.Name)}
}

// BulkCreate inserts a batch in one InsertMany. Every record goes through the
// same validation pipeline and password hashing as Create; a single invalid
// record rejects the whole batch before anything is written.
func (s *Store) BulkCreate(ctx context.Context, records []Record) Result {
	var reasons []string
	for i, rec := range records {
		for _, reason := range s.validate(rec, false) {
			reasons = append(reasons, fmt.Sprintf("enregistrement %d: %s", i+1, reason))
		}
	}
	if len(reasons) > 0 {
		return validationFailed(reasons, fmt.Sprintf("Erreur lors de la création en lot de %s", s.schema.Name))
	}

	now := s.now().UTC()
	docs := make([]Record, 0, len(records))
	for _, rec := range records {
		doc := rec.Clone()
		doc["createdAt"] = now
		doc["updatedAt"] = now
		if pw, found := doc["password"].(string); found && pw != "" {
			hash, err := helpers.HashPassword(pw)
			if err != nil {
				s.logErr("bulkCreate", err)
				return unexpected(err, fmt.Sprintf("Erreur lors de la création en lot de %s", s.schema.Name))
			}
			doc["password"] = hash
		}
		docs = append(docs, doc)
	}

	ids, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		s.logErr("bulkCreate", err)
		return unexpected(err, fmt.Sprintf("Erreur lors de la création en lot de %s", s.schema.Name))
	}

	hexIDs := make([]string, len(ids))
	for i, id := range ids {
		hexIDs[i] = id.Hex()
	}
	data := map[string]interface{}{
		"insertedCount": len(ids),
		"insertedIds":   hexIDs,
	}
	return ok(data, fmt.Sprintf("%d %s(s) créé(s) avec succès", len(ids), s.schema.Name))
}

// EntityStats is the payload returned by Stats.
type EntityStats struct {
	Total      int64  `json:"total"`
	Recent24h  int64  `json:"recent24h"`
	EntityName string `json:"entityName"`
}

// Stats returns the total record count and the count of records created in
// the trailing 24 hours. The two counts run concurrently.
func (s *Store) Stats(ctx context.Context) Result {
	var (
		wg                  sync.WaitGroup
		total, recent       int64
		totalErr, recentErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		total, totalErr = s.coll.CountDocuments(ctx, bson.M{})
	}()
	go func() {
		defer wg.Done()
		since := s.now().UTC().Add(-24 * time.Hour)
		recent, recentErr = s.coll.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
	}()
	wg.Wait()

	if totalErr != nil {
		s.logErr("stats", totalErr)
		return unexpected(totalErr, fmt.Sprintf("Erreur lors des statistiques de %s", s.schema.Name))
	}
	if recentErr != nil {
		s.logErr("stats", recentErr)
		return unexpected(recentErr, fmt.Sprintf("Erreur lors des statistiques de %s", s.schema.Name))
	}

	return ok(EntityStats{Total: total, Recent24h: recent, EntityName: s.schema.Name}, fmt.Sprintf("Statistiques de %s récupérées", s.schema.Name))
}
