package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/fftourney/hub/internal/hub"
)

// ExportDocument is the shape written for republishing: the config fields
// followed by the tournament list.
type ExportDocument struct {
	Banners       []string         `json:"banners"`
	Rules         []string         `json:"rules"`
	UPIID         string           `json:"upiId"`
	AdminWhatsApp string           `json:"adminWhatsApp"`
	Tournaments   []hub.Tournament `json:"tournaments"`
}

// Export renders config and tournaments as indented JSON ready to be copied
// into the published tournaments.json. Nothing is written anywhere.
func Export(cfg hub.AppConfig, tournaments []hub.Tournament) ([]byte, error) {
	doc := ExportDocument{
		Banners:       cfg.Banners,
		Rules:         cfg.Rules,
		UPIID:         cfg.UPIID,
		AdminWhatsApp: cfg.AdminWhatsApp,
		Tournaments:   tournaments,
	}
	if doc.Banners == nil {
		doc.Banners = []string{}
	}
	if doc.Rules == nil {
		doc.Rules = []string{}
	}
	if doc.Tournaments == nil {
		doc.Tournaments = []hub.Tournament{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}
