package analyzer

import "testing"

func TestRecommendationsMatchCatalog(t *testing.T) {
	want := []struct {
		name     string
		priority Severity
	}{
		{"Eclipse Attack", SeverityHigh},
		{"Sybil Attack", SeverityMedium},
		{"Man-in-the-Middle", SeverityHigh},
		{"Poisoning Attack", SeverityMedium},
		{"Traffic Analysis", SeverityMedium},
	}

	recs := Recommendations()
	if len(recs) != len(want) {
		t.Fatalf("expected %d recommendations, got %d", len(want), len(recs))
	}
	for i, w := range want {
		r := recs[i]
		if r.Vulnerability != w.name || r.Priority != w.priority {
			t.Errorf("recommendation %d = %s/%s, want %s/%s", i, r.Vulnerability, r.Priority, w.name, w.priority)
		}
		if r.Implemented {
			t.Errorf("%s: implemented must be false", r.Vulnerability)
		}
		if r.Description == "" || r.Mitigation == "" {
			t.Errorf("%s: description and mitigation are required", r.Vulnerability)
		}
	}
}

func TestGetAttackCatalogReturnsCopy(t *testing.T) {
	catalog := getAttackCatalog()
	catalog[0].Name = "changed"
	if attackCatalog[0].Name != "Eclipse Attack" {
		t.Fatal("catalog should not be mutable through the returned slice")
	}
}
