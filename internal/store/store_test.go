package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fretops/fretops-api/pkg/helpers"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testSchema() Schema {
	return Schema{
		Name:           "Client",
		RequiredFields: []string{"nom", "email"},
		OptionalFields: []string{"ville", "statut"},
		SearchFields:   []string{"nom", "email", "ville"},
		Validate: func(r Record) []string {
			if v, _ := r["statut"].(string); v != "" && v != "actif" && v != "inactif" {
				return []string{"statut invalide"}
			}
			return nil
		},
	}
}

func newTestStore() (*Store, *memCollection) {
	coll := newMemCollection()
	s := New(coll, testSchema(), testLogger())
	return s, coll
}

func reasonsSet(reasons []string) map[string]bool {
	out := make(map[string]bool, len(reasons))
	for _, r := range reasons {
		out[r] = true
	}
	return out
}

func TestCreateCollectsEveryValidationError(t *testing.T) {
	s, coll := newTestStore()

	res := s.Create(context.Background(), Record{
		"email":  "jean@",
		"statut": "archivé",
	})
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Code != CodeValidationFailed {
		t.Fatalf("code = %s, want %s", res.Code, CodeValidationFailed)
	}

	got := reasonsSet(res.Reasons)
	want := []string{
		"le champ 'nom' est requis",
		"format d'email invalide",
		"statut invalide",
	}
	if len(got) != len(want) {
		t.Fatalf("reasons = %v, want %v", res.Reasons, want)
	}
	for _, r := range want {
		if !got[r] {
			t.Errorf("missing reason %q in %v", r, res.Reasons)
		}
	}

	if n, _ := coll.CountDocuments(context.Background(), nil); n != 0 {
		t.Fatalf("invalid create wrote %d documents", n)
	}
}

func TestCreateRequiredPresence(t *testing.T) {
	s, _ := newTestStore()

	// zero values count as absent
	for _, rec := range []Record{
		{"nom": "", "email": "a@b.fr"},
		{"nom": nil, "email": "a@b.fr"},
	} {
		res := s.Create(context.Background(), rec)
		if res.Success || res.Code != CodeValidationFailed {
			t.Fatalf("create %v: success=%v code=%s", rec, res.Success, res.Code)
		}
	}
}

func TestCreateStampsAndReadsBack(t *testing.T) {
	s, _ := newTestStore()
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	res := s.Create(context.Background(), Record{"nom": "Martin", "email": "m@ex.fr"})
	if !res.Success {
		t.Fatalf("create failed: %s %v", res.Message, res.Reasons)
	}
	if res.Message != "Client créé avec succès" {
		t.Errorf("message = %q", res.Message)
	}

	rec, isRec := res.Data.(Record)
	if !isRec {
		t.Fatalf("data is %T, want Record", res.Data)
	}
	if _, hasID := rec["_id"].(primitive.ObjectID); !hasID {
		t.Error("created record has no _id")
	}
	if got, _ := rec["createdAt"].(time.Time); !got.Equal(fixed) {
		t.Errorf("createdAt = %v, want %v", rec["createdAt"], fixed)
	}
	if got, _ := rec["updatedAt"].(time.Time); !got.Equal(fixed) {
		t.Errorf("updatedAt = %v, want %v", rec["updatedAt"], fixed)
	}
}

func TestCreatePermissiveEmailAndPhone(t *testing.T) {
	s, _ := newTestStore()

	// no "@" at all is tolerated, as is any phone value
	res := s.Create(context.Background(), Record{
		"nom":   "Durand",
		"email": "pas-un-email",
		"phone": "n'importe quoi",
	})
	if !res.Success {
		t.Fatalf("create failed: %v", res.Reasons)
	}

	// but an address shaped with "@" must be well formed
	res = s.Create(context.Background(), Record{"nom": "Durand", "email": "bad@nodot"})
	if res.Success {
		t.Fatal("expected malformed address to be rejected")
	}
}

func TestCreateHashesPassword(t *testing.T) {
	s, coll := newTestStore()

	res := s.Create(context.Background(), Record{
		"nom":      "Admin",
		"email":    "admin@ex.fr",
		"password": "motdepasse123",
	})
	if !res.Success {
		t.Fatalf("create failed: %v", res.Reasons)
	}

	stored := coll.docs[0]
	hash, _ := stored["password"].(string)
	if hash == "" || hash == "motdepasse123" {
		t.Fatalf("password stored in clear: %q", hash)
	}
	if !helpers.CompareHashAndPassword(hash, "motdepasse123") {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestFindByIDIdentifierHandling(t *testing.T) {
	s, _ := newTestStore()

	res := s.FindByID(context.Background(), "pas-un-id")
	if res.Success || res.Code != CodeInvalidIdentifier {
		t.Fatalf("invalid id: success=%v code=%s", res.Success, res.Code)
	}
	if res.Message != "Format d'ID invalide" {
		t.Errorf("message = %q", res.Message)
	}

	res = s.FindByID(context.Background(), primitive.NewObjectID().Hex())
	if res.Success || res.Code != CodeNotFound {
		t.Fatalf("unknown id: success=%v code=%s", res.Success, res.Code)
	}
	if res.Message != "Client non trouvé" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestFindByIDRoundTrip(t *testing.T) {
	s, _ := newTestStore()

	created := s.Create(context.Background(), Record{"nom": "Petit", "email": "p@ex.fr"})
	id := created.Data.(Record)["_id"].(primitive.ObjectID)

	res := s.FindByID(context.Background(), id.Hex())
	if !res.Success {
		t.Fatalf("findById failed: %s", res.Message)
	}
	if res.Data.(Record)["nom"] != "Petit" {
		t.Errorf("round trip lost data: %v", res.Data)
	}
}

func TestUpdatePartialAndImmutableID(t *testing.T) {
	s, _ := newTestStore()
	t0 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }

	created := s.Create(context.Background(), Record{"nom": "Roux", "email": "r@ex.fr", "ville": "Lyon"})
	id := created.Data.(Record)["_id"].(primitive.ObjectID)

	t1 := t0.Add(time.Hour)
	s.now = func() time.Time { return t1 }

	// required fields are not demanded on update, and the identifier cannot move
	res := s.Update(context.Background(), id.Hex(), Record{
		"ville": "Nantes",
		"_id":   primitive.NewObjectID(),
		"id":    "autre",
	})
	if !res.Success {
		t.Fatalf("update failed: %s %v", res.Message, res.Reasons)
	}
	rec := res.Data.(Record)
	if rec["_id"].(primitive.ObjectID) != id {
		t.Error("update moved the identifier")
	}
	if rec["ville"] != "Nantes" {
		t.Errorf("ville = %v", rec["ville"])
	}
	if rec["nom"] != "Roux" {
		t.Error("update dropped untouched fields")
	}
	if got, _ := rec["updatedAt"].(time.Time); !got.Equal(t1) {
		t.Errorf("updatedAt = %v, want %v", rec["updatedAt"], t1)
	}
	if got, _ := rec["createdAt"].(time.Time); !got.Equal(t0) {
		t.Errorf("createdAt = %v, want %v", rec["createdAt"], t0)
	}
}

func TestUpdateEmptyPayloadBumpsTimestamp(t *testing.T) {
	s, _ := newTestStore()
	t0 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }

	created := s.Create(context.Background(), Record{"nom": "Blanc", "email": "b@ex.fr"})
	id := created.Data.(Record)["_id"].(primitive.ObjectID)

	t1 := t0.Add(time.Minute)
	s.now = func() time.Time { return t1 }

	res := s.Update(context.Background(), id.Hex(), Record{})
	if !res.Success {
		t.Fatalf("empty update rejected: %s", res.Message)
	}
	if got, _ := res.Data.(Record)["updatedAt"].(time.Time); !got.Equal(t1) {
		t.Errorf("updatedAt = %v, want %v", res.Data.(Record)["updatedAt"], t1)
	}
}

func TestUpdateFailureModes(t *testing.T) {
	s, _ := newTestStore()

	res := s.Update(context.Background(), "zzz", Record{"ville": "Paris"})
	if res.Code != CodeInvalidIdentifier {
		t.Fatalf("code = %s, want %s", res.Code, CodeInvalidIdentifier)
	}

	res = s.Update(context.Background(), primitive.NewObjectID().Hex(), Record{"ville": "Paris"})
	if res.Code != CodeNotFound {
		t.Fatalf("code = %s, want %s", res.Code, CodeNotFound)
	}

	created := s.Create(context.Background(), Record{"nom": "Noir", "email": "n@ex.fr"})
	id := created.Data.(Record)["_id"].(primitive.ObjectID)
	res = s.Update(context.Background(), id.Hex(), Record{"email": "bad@nodot"})
	if res.Code != CodeValidationFailed {
		t.Fatalf("code = %s, want %s", res.Code, CodeValidationFailed)
	}
}

func TestDelete(t *testing.T) {
	s, coll := newTestStore()

	created := s.Create(context.Background(), Record{"nom": "Gris", "email": "g@ex.fr"})
	id := created.Data.(Record)["_id"].(primitive.ObjectID)

	res := s.Delete(context.Background(), id.Hex())
	if !res.Success {
		t.Fatalf("delete failed: %s", res.Message)
	}
	if res.Message != "Client supprimé avec succès" {
		t.Errorf("message = %q", res.Message)
	}
	if len(coll.docs) != 0 {
		t.Fatal("document still present after delete")
	}

	res = s.Delete(context.Background(), id.Hex())
	if res.Code != CodeNotFound {
		t.Fatalf("second delete code = %s, want %s", res.Code, CodeNotFound)
	}
}

func TestBulkCreateRejectsWholeBatch(t *testing.T) {
	s, coll := newTestStore()

	res := s.BulkCreate(context.Background(), []Record{
		{"nom": "Valide", "email": "v@ex.fr"},
		{"email": "bad@nodot"},
	})
	if res.Success || res.Code != CodeValidationFailed {
		t.Fatalf("success=%v code=%s", res.Success, res.Code)
	}
	for _, reason := range res.Reasons {
		if !strings.HasPrefix(reason, "enregistrement 2: ") {
			t.Errorf("unexpected reason %q", reason)
		}
	}
	if len(coll.docs) != 0 {
		t.Fatal("rejected batch still wrote documents")
	}
}

func TestBulkCreateInsertsAndHashes(t *testing.T) {
	s, coll := newTestStore()

	res := s.BulkCreate(context.Background(), []Record{
		{"nom": "Un", "email": "un@ex.fr", "password": "secret123"},
		{"nom": "Deux", "email": "deux@ex.fr"},
	})
	if !res.Success {
		t.Fatalf("bulk create failed: %v", res.Reasons)
	}

	data := res.Data.(map[string]interface{})
	if data["insertedCount"] != 2 {
		t.Errorf("insertedCount = %v", data["insertedCount"])
	}
	ids := data["insertedIds"].([]string)
	if len(ids) != 2 {
		t.Fatalf("insertedIds = %v", ids)
	}
	for _, id := range ids {
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			t.Errorf("inserted id %q is not a valid hex identifier", id)
		}
	}

	hash, _ := coll.docs[0]["password"].(string)
	if !helpers.CompareHashAndPassword(hash, "secret123") {
		t.Error("bulk create did not hash the password")
	}
}

func TestStatsCountsRecentWindow(t *testing.T) {
	s, _ := newTestStore()

	old := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return old }
	s.Create(context.Background(), Record{"nom": "Ancien", "email": "a@ex.fr"})

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now.Add(-2 * time.Hour) }
	s.Create(context.Background(), Record{"nom": "Récent", "email": "r@ex.fr"})

	s.now = func() time.Time { return now }
	res := s.Stats(context.Background())
	if !res.Success {
		t.Fatalf("stats failed: %s", res.Message)
	}
	stats := res.Data.(EntityStats)
	if stats.Total != 2 {
		t.Errorf("total = %d, want 2", stats.Total)
	}
	if stats.Recent24h != 1 {
		t.Errorf("recent24h = %d, want 1", stats.Recent24h)
	}
	if stats.EntityName != "Client" {
		t.Errorf("entityName = %q", stats.EntityName)
	}
}

func TestStorageFailureBecomesUnexpected(t *testing.T) {
	s, coll := newTestStore()
	coll.insertErr = errors.New("réseau coupé")

	res := s.Create(context.Background(), Record{"nom": "X", "email": "x@ex.fr"})
	if res.Success || res.Code != CodeUnexpected {
		t.Fatalf("success=%v code=%s", res.Success, res.Code)
	}
	if len(res.Reasons) == 0 || !strings.Contains(res.Reasons[0], "réseau coupé") {
		t.Errorf("reasons = %v", res.Reasons)
	}
}
