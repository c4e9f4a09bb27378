package entity

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/fretops/fretops-api/internal/store"
)

// Entity-specific lookups are free functions over the generic store, not
// store subtypes. Each one only shapes a filter and delegates.

// ClientsBySecteur matches the activity sector as a case-insensitive pattern.
func ClientsBySecteur(ctx context.Context, s *store.Store, secteur string) store.Result {
	return s.FindAll(ctx, store.ListOptions{
		Filter: bson.M{"secteurActivite": bson.M{"$regex": secteur, "$options": "i"}},
	})
}

// ClientsByTaille matches the company-size code exactly.
func ClientsByTaille(ctx context.Context, s *store.Store, taille string) store.Result {
	return s.FindAll(ctx, store.ListOptions{Filter: bson.M{"tailleEntreprise": taille}})
}

// ClientsByStatut matches the client status exactly.
func ClientsByStatut(ctx context.Context, s *store.Store, statut string) store.Result {
	return s.FindAll(ctx, store.ListOptions{Filter: bson.M{"statutClient": statut}})
}

// ClientsVIP returns clients whose order count reaches the threshold, most
// active first.
func ClientsVIP(ctx context.Context, s *store.Store, seuil int) store.Result {
	return s.FindAll(ctx, store.ListOptions{
		Filter:    bson.M{"historiqueCommandes.nombre": bson.M{"$gte": seuil}},
		SortField: "historiqueCommandes.nombre",
		SortDesc:  true,
	})
}

// TransporteursByType matches carriers handling the given transport type.
func TransporteursByType(ctx context.Context, s *store.Store, typeTransport string) store.Result {
	return s.FindAll(ctx, store.ListOptions{
		Filter: bson.M{"typesTransport": bson.M{"$in": []string{typeTransport}}},
	})
}

// TransporteursByZone matches carriers covering the given geographic zone.
func TransporteursByZone(ctx context.Context, s *store.Store, zone string) store.Result {
	return s.FindAll(ctx, store.ListOptions{
		Filter: bson.M{"zonesGeographiques": bson.M{"$in": []string{zone}}},
	})
}

// TransporteursByCapacite filters carriers by capacity range. A zero bound
// leaves that side open.
func TransporteursByCapacite(ctx context.Context, s *store.Store, min, max int) store.Result {
	capFilter := bson.M{}
	if min > 0 {
		capFilter["$gte"] = min
	}
	if max > 0 {
		capFilter["$lte"] = max
	}
	filter := bson.M{}
	if len(capFilter) > 0 {
		filter["capaciteTransport"] = capFilter
	}
	return s.FindAll(ctx, store.ListOptions{Filter: filter})
}
