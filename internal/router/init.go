package router

import (
	"context"

	"github.com/fretops/fretops-api/internal/container"
	"github.com/fretops/fretops-api/internal/domain/entity"
	"github.com/fretops/fretops-api/internal/infrastructure/mongodb"
	handlers "github.com/fretops/fretops-api/internal/interface/http"
	"github.com/fretops/fretops-api/internal/router/modules"
	"github.com/fretops/fretops-api/internal/store"
)

func buildStore(collection string, schema store.Schema) *store.Store {
	coll := mongodb.NewCollection(container.GetMongoDB().Collection(collection))
	return store.New(coll, schema, container.GetLogger())
}

// InitModules builds every entity store and registers the feature modules.
// It must be called once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	company := buildStore("company", entity.Entreprise())
	clients := buildStore("clients", entity.Client())
	transporteurs := buildStore("transporteurs", entity.Transporteur())
	commissionnaires := buildStore("commissionnaires", entity.Commissionnaire())
	devis := buildStore("devis", entity.Devis())
	factures := buildStore("factures", entity.Facture())
	ordres := buildStore("ordres", entity.OrdreTransport())
	messages := buildStore("messages", entity.Message())
	conditions := buildStore("conditions", entity.ConditionsTransport())
	notes := buildStore("notes", entity.Note())
	settings := buildStore("userSettings", entity.UserSettings())
	utilisateurs := buildStore("utilisateurs", entity.Utilisateur())

	notifier := &handlers.Notifier{
		Pub:    container.GetRabbitPub(),
		To:     cfg.NotifyEmail,
		Logger: logger,
	}

	crud := func(s *store.Store) *handlers.CrudHandler {
		return handlers.NewCrudHandler(s, logger)
	}

	r.Add(
		modules.NewCompanyModule(handlers.NewCompanyHandler(crud(company))),
		modules.NewClientModule(handlers.NewClientHandler(crud(clients))),
		modules.NewTransporteurModule(handlers.NewTransporteurHandler(crud(transporteurs))),
		modules.NewCrudModule("commissionnaires", crud(commissionnaires)),
		modules.NewDevisModule(handlers.NewDevisHandler(crud(devis), notifier)),
		modules.NewCrudModule("factures", crud(factures)),
		modules.NewCrudModule("ordres-transport", crud(ordres)),
		modules.NewMessageModule(handlers.NewMessageHandler(crud(messages), notifier)),
		modules.NewCrudModule("conditions-transport", crud(conditions)),
		modules.NewNoteModule(handlers.NewNoteHandler(notes.Collection(), logger)),
		modules.NewSettingsModule(handlers.NewSettingsHandler(settings.Collection(), logger)),
	)

	authHandler := handlers.NewAuthHandler(
		utilisateurs,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		cfg.CookieDomain,
		cfg.CookieSecure,
	)
	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))

	uploadHandler := handlers.NewUploadHandler(container.GetGCS(), cfg.GCSBucket, cfg.UploadDir, logger)
	r.Add(modules.NewUploadModule(uploadHandler, container.GetJWT()))

	allStores := []*store.Store{
		company, clients, transporteurs, commissionnaires, devis, factures,
		ordres, messages, conditions, notes, settings, utilisateurs,
	}
	ping := func(ctx context.Context) error {
		return container.GetMongoClient().Ping(ctx, nil)
	}
	r.Add(
		modules.NewHealthModule(handlers.NewHealthHandler(allStores, ping, logger)),
		modules.NewDebugModule(),
	)
}
