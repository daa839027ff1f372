package domain

import "testing"

func TestRecentActivityLine(t *testing.T) {
	cases := []struct {
		name   string
		recent *RecentActivity
		want   string
	}{
		{"nil", nil, ""},
		{"empty", &RecentActivity{}, ""},
		{
			"full",
			&RecentActivity{Tool: "port_scan", Target: "example.com", Summary: "443 open"},
			"Latest port scan on example.com (443 open)",
		},
		{
			"tool only",
			&RecentActivity{Tool: "whois"},
			"Latest whois",
		},
		{
			"no summary",
			&RecentActivity{Tool: "dns_records", Target: "example.org"},
			"Latest dns records on example.org",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.recent.Line(); got != tc.want {
				t.Errorf("Line() = %q, want %q", got, tc.want)
			}
		})
	}
}
