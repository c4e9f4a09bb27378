// Package entity declares the static schema description of every domain
// entity. Per-entity behavior is configuration injected into the generic
// store, not subclassing: search fields and validation hooks live here as
// data and plain functions.
package entity

import (
	"github.com/fretops/fretops-api/internal/domain/validate"
	"github.com/fretops/fretops-api/internal/store"
)

func strField(r store.Record, key string) string {
	s, _ := r[key].(string)
	return s
}

// Client is a customer company with full billing coordinates.
func Client() store.Schema {
	return store.Schema{
		Name:           "Client",
		RequiredFields: []string{"nom", "email", "telephone", "adresse", "ville", "codePostal", "pays"},
		OptionalFields: []string{
			"siret", "tva", "siteWeb", "notes", "secteurActivite", "tailleEntreprise",
			"contactPrincipal", "historiqueCommandes", "preferences", "statutClient",
		},
		SearchFields: []string{"nom", "email", "telephone", "ville", "pays", "siret", "secteurActivite"},
		Validate: func(r store.Record) []string {
			var errs []string
			if v := strField(r, "siret"); v != "" && !validate.Siret(v) {
				errs = append(errs, "format SIRET invalide")
			}
			if v := strField(r, "tva"); v != "" && !validate.TVA(v) {
				errs = append(errs, "format numéro de TVA invalide")
			}
			if v := strField(r, "codePostal"); v != "" && !validate.CodePostal(v) {
				errs = append(errs, "format code postal invalide")
			}
			if v := strField(r, "tailleEntreprise"); v != "" && !validate.TailleEntreprise(v) {
				errs = append(errs, "taille d'entreprise invalide")
			}
			return errs
		},
	}
}

// Transporteur is a carrier. Only the company name is mandatory; the rest of
// the sheet fills in over time.
func Transporteur() store.Schema {
	return store.Schema{
		Name:           "Transporteur",
		RequiredFields: []string{"nom_de_entreprise"},
		OptionalFields: []string{
			"representant", "registrationNumber", "street", "city", "zipCode", "country",
			"email", "phone", "taxID", "typesTransport", "zonesGeographiques",
			"capaciteTransport", "certifications", "contactPrincipal", "horairesDisponibilite",
		},
		SearchFields: []string{
			"nom_de_entreprise", "representant", "email", "phone", "city", "country",
			"registrationNumber", "typesTransport",
		},
		Validate: func(r store.Record) []string {
			var errs []string
			if v := strField(r, "registrationNumber"); v != "" && !validate.Siret(v) {
				errs = append(errs, "format SIRET invalide")
			}
			if v := strField(r, "taxID"); v != "" && !validate.TVA(v) {
				errs = append(errs, "format numéro de TVA invalide")
			}
			if v := strField(r, "zipCode"); v != "" && !validate.CodePostal(v) {
				errs = append(errs, "format code postal invalide")
			}
			if v, present := r["capaciteTransport"]; present && !validate.CapaciteTransport(v) {
				errs = append(errs, "capacité de transport invalide")
			}
			return errs
		},
	}
}

// Commissionnaire is a freight broker, an individual contact rather than a
// company sheet.
func Commissionnaire() store.Schema {
	return store.Schema{
		Name:           "Commissionnaire",
		RequiredFields: []string{"nom", "prenom", "email", "telephone", "adresse", "ville", "codePostal", "pays"},
		OptionalFields: []string{"siret", "tva", "siteWeb", "notes", "specialites", "langues", "certifications"},
		SearchFields:   []string{"nom", "prenom", "email", "telephone", "ville", "pays", "siret"},
		Validate: func(r store.Record) []string {
			var errs []string
			if v := strField(r, "siret"); v != "" && !validate.Siret(v) {
				errs = append(errs, "format SIRET invalide")
			}
			if v := strField(r, "tva"); v != "" && !validate.TVA(v) {
				errs = append(errs, "format numéro de TVA invalide")
			}
			if v := strField(r, "codePostal"); v != "" && !validate.CodePostal(v) {
				errs = append(errs, "format code postal invalide")
			}
			return errs
		},
	}
}

// Devis is a quote. Quotes are drafted incrementally, so nothing is required
// at creation.
func Devis() store.Schema {
	return store.Schema{
		Name:           "Devis",
		RequiredFields: []string{},
		OptionalFields: []string{
			"devisID", "companyInfo", "client", "transporteur", "commissionnaire",
			"items", "totalHT", "tvaRate", "tva", "totalTTC", "statut", "date",
		},
		SearchFields: []string{"devisID", "statut"},
	}
}

// Facture is an invoice, usually issued from an accepted devis.
func Facture() store.Schema {
	return store.Schema{
		Name:           "Facture",
		RequiredFields: []string{},
		OptionalFields: []string{
			"factureID", "devisID", "client", "items", "totalHT", "tva", "totalTTC",
			"statut", "dateEmission", "dateEcheance",
		},
		SearchFields: []string{"factureID", "statut"},
	}
}

// OrdreTransport is a transport order.
func OrdreTransport() store.Schema {
	return store.Schema{
		Name:           "OrdreTransport",
		RequiredFields: []string{"ordreTransport", "adresseDepart"},
		OptionalFields: []string{
			"adresseArrivee", "dateDepart", "dateArrivee", "transporteur", "client",
			"statut", "marchandise", "poids", "volume",
		},
		SearchFields: []string{"ordreTransport", "adresseDepart", "adresseArrivee", "statut"},
	}
}

// Message is an inbound contact message.
func Message() store.Schema {
	return store.Schema{
		Name:           "Message",
		RequiredFields: []string{"name", "email", "message"},
		OptionalFields: []string{"phone", "sujet", "date"},
		SearchFields:   []string{"name", "email", "sujet", "message"},
	}
}

// ConditionsTransport is a versioned terms-of-transport document.
func ConditionsTransport() store.Schema {
	return store.Schema{
		Name:           "ConditionsTransport",
		RequiredFields: []string{},
		OptionalFields: []string{"titre", "contenu", "version"},
		SearchFields:   []string{"titre"},
	}
}

// Entreprise is the company's own information sheet. The collection holds at
// most one document; the handler enforces uniqueness on create.
func Entreprise() store.Schema {
	return store.Schema{
		Name:           "Entreprise",
		RequiredFields: []string{"name", "description"},
		OptionalFields: []string{
			"phone", "email", "address", "city", "zipCode", "country",
			"siret", "tva", "website", "logo",
		},
		SearchFields: []string{"name", "email", "phone"},
		Validate: func(r store.Record) []string {
			var errs []string
			if v := strField(r, "siret"); v != "" && !validate.Siret(v) {
				errs = append(errs, "format SIRET invalide")
			}
			if v := strField(r, "tva"); v != "" && !validate.TVA(v) {
				errs = append(errs, "format numéro de TVA invalide")
			}
			if v := strField(r, "zipCode"); v != "" && !validate.CodePostal(v) {
				errs = append(errs, "format code postal invalide")
			}
			return errs
		},
	}
}

// UserSettings is a per-user preferences document, one per userId.
func UserSettings() store.Schema {
	return store.Schema{
		Name:           "Paramètres utilisateur",
		RequiredFields: []string{"userId"},
		OptionalFields: []string{"autoRefreshInterval"},
		SearchFields:   []string{"userId"},
	}
}

// Note is a per-user notepad document, one per userId.
func Note() store.Schema {
	return store.Schema{
		Name:           "Note",
		RequiredFields: []string{"userId"},
		OptionalFields: []string{"notes"},
		SearchFields:   []string{"userId"},
	}
}

// Utilisateur is an account. The store hashes the password on create and on
// every update that supplies one.
func Utilisateur() store.Schema {
	return store.Schema{
		Name:           "Utilisateur",
		RequiredFields: []string{"email", "password"},
		OptionalFields: []string{"nom", "role"},
		SearchFields:   []string{"email", "nom"},
	}
}
