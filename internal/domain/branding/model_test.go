package branding

import (
	"strings"
	"testing"
)

// TestAboutHTML_RendersMarkdown verifies emphasis renders to HTML.
func TestAboutHTML_RendersMarkdown(t *testing.T) {
	tenant := Tenant{Key: "t", Name: "T", AboutMarkdown: "hello **world**"}
	html := tenant.AboutHTML()
	if !strings.Contains(html, "<strong>world</strong>") {
		t.Errorf("expected rendered markdown, got %q", html)
	}
}

// TestAboutHTML_EscapesRawHTML verifies script tags cannot pass through.
func TestAboutHTML_EscapesRawHTML(t *testing.T) {
	tenant := Tenant{Key: "t", Name: "T", AboutMarkdown: `<script>alert(1)</script>`}
	html := tenant.AboutHTML()
	if strings.Contains(html, "<script>") {
		t.Errorf("raw HTML leaked into output: %q", html)
	}
}

// TestDefaultTenants_CoverKnownKeys verifies all marketing variants seed.
func TestDefaultTenants_CoverKnownKeys(t *testing.T) {
	keys := make(map[string]bool)
	for _, tenant := range DefaultTenants() {
		if err := tenant.Validate(); err != nil {
			t.Errorf("default tenant %q invalid: %v", tenant.Key, err)
		}
		keys[tenant.Key] = true
	}
	for _, want := range []string{TenantDefault, TenantAcademies, TenantMembers} {
		if !keys[want] {
			t.Errorf("missing default tenant %q", want)
		}
	}
}
