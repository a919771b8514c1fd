package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FergusAPIBaseURL != "https://api.fergus.com" {
		t.Fatalf("api base = %q", cfg.FergusAPIBaseURL)
	}
	if cfg.SalesAccountID != 128381 || cfg.QuoteDueDays != 180 {
		t.Fatalf("quote defaults = %d, %d", cfg.SalesAccountID, cfg.QuoteDueDays)
	}
	if cfg.QtyTolerance != 0.01 || cfg.ProblemPreviewLimit != 20 {
		t.Fatalf("tolerances = %v, %d", cfg.QtyTolerance, cfg.ProblemPreviewLimit)
	}
	if cfg.FergusRateLimitRPS != 5 || cfg.FergusTimeoutMs != 30000 {
		t.Fatalf("transport defaults = %d, %d", cfg.FergusRateLimitRPS, cfg.FergusTimeoutMs)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FERGUS_API_BASE_URL", "https://api.fergus.test")
	t.Setenv("SALES_ACCOUNT_ID", "999")
	t.Setenv("QTY_TOLERANCE", "0.5")
	t.Setenv("QUOTE_DUE_DAYS", "junk")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FergusAPIBaseURL != "https://api.fergus.test" {
		t.Fatalf("api base = %q", cfg.FergusAPIBaseURL)
	}
	if cfg.SalesAccountID != 999 {
		t.Fatalf("sales account = %d", cfg.SalesAccountID)
	}
	if cfg.QtyTolerance != 0.5 {
		t.Fatalf("tolerance = %v", cfg.QtyTolerance)
	}
	if cfg.QuoteDueDays != 180 {
		t.Fatalf("unparsable int should fall back, got %d", cfg.QuoteDueDays)
	}
}

func TestRequire(t *testing.T) {
	var cfg Config
	if err := cfg.Require("FERGUS_API_TOKEN", ""); err == nil {
		t.Fatal("expected error for blank value")
	}
	if err := cfg.Require("FERGUS_API_TOKEN", "token"); err != nil {
		t.Fatal(err)
	}
}
