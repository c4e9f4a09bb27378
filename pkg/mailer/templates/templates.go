// Package templates renders the notification emails sent by the worker.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

var contactMessage = template.Must(template.New("contact_message").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Nouveau message de contact</h2>
  <div style="background: #f5f5f5; padding: 16px; border-radius: 6px;">
    <p><strong>Nom :</strong> {{.Name}}</p>
    <p><strong>Email :</strong> {{.Email}}</p>
    {{if .Phone}}<p><strong>Téléphone :</strong> {{.Phone}}</p>{{end}}
    {{if .Sujet}}<p><strong>Sujet :</strong> {{.Sujet}}</p>{{end}}
  </div>
  <div style="padding: 16px;">
    <p>{{.Message}}</p>
  </div>
</div>
`))

var devisCreated = template.Must(template.New("devis_created").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Nouveau devis créé</h2>
  <div style="background: #f5f5f5; padding: 16px; border-radius: 6px;">
    <p><strong>Numéro de devis :</strong> {{if .DevisID}}{{.DevisID}}{{else}}-{{end}}</p>
    {{if .Client}}<p><strong>Client :</strong> {{.Client}}</p>{{end}}
    {{if .TotalTTC}}<p><strong>Total TTC :</strong> {{.TotalTTC}}</p>{{end}}
  </div>
  <p style="color: #777; font-size: 12px;">Ce devis a été créé depuis l'interface d'administration.</p>
</div>
`))

var byName = map[string]*template.Template{
	"contact_message": contactMessage,
	"devis_created":   devisCreated,
}

// RenderHTML renders the named template with the given data.
func RenderHTML(name string, data map[string]any) (string, error) {
	tpl, found := byName[name]
	if !found {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
