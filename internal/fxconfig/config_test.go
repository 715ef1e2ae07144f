package fxconfig

import "testing"

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
debug: true
functions:
  - name: regexp_search
    enabled: false
`), "filterx.yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug true")
	}
	if cfg.IsEnabled("regexp_search") {
		t.Fatalf("expected regexp_search disabled")
	}
	if !cfg.IsEnabled("startswith") {
		t.Fatalf("expected unlisted function to default enabled")
	}
}

func TestParseConfigRejectsDuplicateFunctionNames(t *testing.T) {
	_, err := ParseConfig([]byte(`
functions:
  - name: includes
  - name: includes
`), "filterx.yaml")
	if err == nil {
		t.Fatalf("expected duplicate-name error")
	}
}

func TestTemplateOptionsConversion(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
template:
  timezone: UTC
  escape: true
`), "filterx.yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	opts := cfg.TemplateOptions()
	if opts.TimeZone != "UTC" || !opts.Escape {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
