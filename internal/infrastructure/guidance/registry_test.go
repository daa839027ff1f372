package guidance

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestNewRegistryEmbeddedDefaults(t *testing.T) {
	registry, err := NewRegistry("")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	all := registry.All()
	if len(all) == 0 {
		t.Fatal("embedded catalog is empty")
	}

	for _, key := range []string{"whois", "dns_records", "ip_geolocation", "port_scan", "speed", "domain"} {
		if _, ok := registry.Lookup(key); !ok {
			t.Errorf("embedded catalog missing %q", key)
		}
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	registry, err := NewRegistry("")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if _, ok := registry.Lookup("WHOIS"); !ok {
		t.Error("lookup must be case-insensitive")
	}
	if _, ok := registry.Lookup("  whois  "); !ok {
		t.Error("lookup must trim whitespace")
	}
	if _, ok := registry.Lookup("nmap"); ok {
		t.Error("unknown key must miss")
	}
}

func TestSupportedToolsSorted(t *testing.T) {
	registry, err := NewRegistry("")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	keys := registry.SupportedTools()
	if !sort.StringsAreSorted(keys) {
		t.Errorf("SupportedTools not sorted: %v", keys)
	}
}

func TestNewRegistryCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `tools:
  - key: Ping
    title: Ping Check
    description: Round-trip latency to a host.
    keywords: [latency, icmp]
    usage:
      - Enter a hostname
    example: /api/ping
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	registry, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	tool, ok := registry.Lookup("ping")
	if !ok {
		t.Fatal("custom tool not found; keys should be lowercased on load")
	}
	if tool.Title != "Ping Check" {
		t.Errorf("title = %q", tool.Title)
	}
}

func TestNewRegistryRejectsBadCatalogs(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty", "tools: []"},
		{"missing key", "tools:\n  - title: No Key\n"},
		{"duplicate key", "tools:\n  - key: whois\n    title: A\n  - key: WHOIS\n    title: B\n"},
		{"not yaml", ":::not yaml"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := NewRegistry(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewRegistryMissingFile(t *testing.T) {
	if _, err := NewRegistry(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing catalog file")
	}
}
