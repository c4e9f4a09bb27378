package templates

import (
	"strings"
	"testing"
)

func TestRenderContactMessage(t *testing.T) {
	html, err := RenderHTML("contact_message", map[string]any{
		"Name":    "Jean Martin",
		"Email":   "jean@ex.fr",
		"Message": "Besoin d'un devis",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Jean Martin", "jean@ex.fr", "Besoin d&#39;un devis"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered html misses %q", want)
		}
	}
	if strings.Contains(html, "Téléphone") {
		t.Error("empty phone section rendered")
	}
}

func TestRenderDevisCreated(t *testing.T) {
	html, err := RenderHTML("devis_created", map[string]any{
		"DevisID":  "DEV-2026-001",
		"TotalTTC": "1440.00",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "DEV-2026-001") || !strings.Contains(html, "1440.00") {
		t.Errorf("rendered html misses quote fields: %s", html)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := RenderHTML("inconnu", nil); err == nil {
		t.Fatal("unknown template accepted")
	}
}
