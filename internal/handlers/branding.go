package handlers

import (
	"github.com/gofiber/fiber/v3"

	"fininclusion/internal/config"
)

// Branding is the page chrome shared by every rendered view: the site text
// from config and the version of the model answering predictions.
type Branding struct {
	SiteTitle    string
	SiteTagline  string
	SiteFooter   string
	ModelVersion string // empty on pages rendered before a model is known
}

// NewBranding builds the branding for a process serving modelVersion.
func NewBranding(cfg *config.Config, modelVersion string) Branding {
	return Branding{
		SiteTitle:    cfg.SiteTitle,
		SiteTagline:  cfg.SiteTagline,
		SiteFooter:   cfg.SiteFooter,
		ModelVersion: modelVersion,
	}
}

// Apply adds the branding keys to data and returns it.
func (b Branding) Apply(data fiber.Map) fiber.Map {
	data["SiteTitle"] = b.SiteTitle
	data["SiteTagline"] = b.SiteTagline
	data["SiteFooter"] = b.SiteFooter
	data["ModelVersion"] = b.ModelVersion
	return data
}
