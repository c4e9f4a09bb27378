package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fretops/fretops-api/config"
	"github.com/fretops/fretops-api/internal/domain/entity"
	"github.com/fretops/fretops-api/internal/infrastructure/mongodb"
	"github.com/fretops/fretops-api/internal/store"
	"github.com/fretops/fretops-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx := context.Background()
	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnectTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := store.New(mongodb.NewCollection(db.Collection("utilisateurs")), entity.Utilisateur(), logger)
	email := "admin@fretops.fr"
	if _, err := users.Collection().FindOne(ctx, bson.M{"email": email}); err == nil {
		fmt.Printf("admin user %s already present\n", email)
	} else {
		res := users.Create(ctx, store.Record{
			"email":    email,
			"password": "password123",
			"nom":      "Administrateur",
		})
		if !res.Success {
			log.Fatalf("failed to seed admin user: %s %v", res.Message, res.Reasons)
		}
		fmt.Printf("seeded admin user: email=%s password=password123\n", email)
	}

	clients := store.New(mongodb.NewCollection(db.Collection("clients")), entity.Client(), logger)
	res := clients.BulkCreate(ctx, []store.Record{
		{
			"nom":              "Transports Martin",
			"email":            "contact@transports-martin.fr",
			"telephone":        "+33 4 72 00 00 01",
			"adresse":          "12 rue de la Soie",
			"ville":            "Lyon",
			"codePostal":       "69003",
			"pays":             "France",
			"secteurActivite":  "Agroalimentaire",
			"tailleEntreprise": "PME",
			"statutClient":     "actif",
		},
		{
			"nom":              "Logistique Dupont",
			"email":            "info@logistique-dupont.fr",
			"telephone":        "+33 2 40 00 00 02",
			"adresse":          "4 quai des Antilles",
			"ville":            "Nantes",
			"codePostal":       "44000",
			"pays":             "France",
			"secteurActivite":  "Industrie",
			"tailleEntreprise": "ETI",
			"statutClient":     "actif",
		},
	})
	if !res.Success {
		log.Fatalf("failed to seed clients: %s %v", res.Message, res.Reasons)
	}
	fmt.Println("seeded sample clients")

	transporteurs := store.New(mongodb.NewCollection(db.Collection("transporteurs")), entity.Transporteur(), logger)
	res = transporteurs.BulkCreate(ctx, []store.Record{
		{
			"nom_de_entreprise":  "Fret Express 69",
			"email":              "dispo@fretexpress69.fr",
			"city":               "Lyon",
			"country":            "France",
			"typesTransport":     []string{"frigorifique", "bâché"},
			"zonesGeographiques": []string{"Rhône-Alpes", "PACA"},
			"capaciteTransport":  24,
		},
		{
			"nom_de_entreprise":  "Ouest Cargo",
			"email":              "exploitation@ouest-cargo.fr",
			"city":               "Nantes",
			"country":            "France",
			"typesTransport":     []string{"plateau"},
			"zonesGeographiques": []string{"Bretagne", "Pays de la Loire"},
			"capaciteTransport":  19,
		},
	})
	if !res.Success {
		log.Fatalf("failed to seed transporteurs: %s %v", res.Message, res.Reasons)
	}
	fmt.Println("seeded sample transporteurs")
}
