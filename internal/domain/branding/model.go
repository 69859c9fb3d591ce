// Package branding holds the per-tenant marketing variants of the landing
// page: club name, tagline and a markdown about-section rendered to HTML.
package branding

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// Known tenant keys seeded at startup.
const (
	TenantDefault   = "default"
	TenantAcademies = "academies"
	TenantMembers   = "members"
)

// ErrNotFound is returned for unknown tenant keys.
var ErrNotFound = errors.New("branding tenant not found")

// Tenant is one branding variant of the landing page.
type Tenant struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Tagline       string `json:"tagline"`
	AboutMarkdown string `json:"aboutMarkdown"`
	PrimaryColor  string `json:"primaryColor"`
}

// mdRenderer escapes raw HTML in the markdown input (WithUnsafe is NOT
// set), so tenant-editable content cannot inject script.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Validate checks if the Tenant has valid data.
// PRE: Tenant struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (t *Tenant) Validate() error {
	if strings.TrimSpace(t.Key) == "" {
		return errors.New("tenant key cannot be empty")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("tenant name cannot be empty")
	}
	return nil
}

// AboutHTML renders the markdown about-section to HTML.
// POST: Returns escaped HTML; falls back to the raw text on render failure
func (t *Tenant) AboutHTML() string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(t.AboutMarkdown), &buf); err != nil {
		return t.AboutMarkdown
	}
	return buf.String()
}

// DefaultTenants returns the branding rows seeded on first boot.
func DefaultTenants() []Tenant {
	return []Tenant{
		{
			Key:           TenantDefault,
			Name:          "Membo Martial Arts",
			Tagline:       "Train hard, stay humble",
			AboutMarkdown: "Welcome to **Membo**. Book classes, track your attendance and chase the mat streak.",
			PrimaryColor:  "#1d4ed8",
		},
		{
			Key:           TenantAcademies,
			Name:          "Membo for Academies",
			Tagline:       "Run your academy, not your spreadsheets",
			AboutMarkdown: "Class scheduling, capacity control and a *Member of the Month* board for multi-program academies.",
			PrimaryColor:  "#b91c1c",
		},
		{
			Key:           TenantMembers,
			Name:          "Membo for Members",
			Tagline:       "Your training, one tap away",
			AboutMarkdown: "Reserve your spot, keep your streak alive, and see where you rank this month.",
			PrimaryColor:  "#047857",
		},
	}
}
