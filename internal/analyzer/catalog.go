package analyzer

// AttackClass describes a known P2P attack and how it is mitigated.
type AttackClass struct {
	Name        string
	Description string
	Mitigation  string
	RiskLevel   Severity
}

// attackCatalog lists the P2P attack classes every report carries advisories
// for. The list is fixed; catalog_test.go pins its length and order.
var attackCatalog = []AttackClass{
	{
		Name:        "Eclipse Attack",
		Description: "Attacker controls all peer connections",
		Mitigation:  "Diverse peer selection, reputation system",
		RiskLevel:   SeverityHigh,
	},
	{
		Name:        "Sybil Attack",
		Description: "Single attacker creates multiple fake identities",
		Mitigation:  "Proof of work, reputation system, rate limiting",
		RiskLevel:   SeverityMedium,
	},
	{
		Name:        "Man-in-the-Middle",
		Description: "Attacker intercepts communications",
		Mitigation:  "End-to-end encryption, certificate pinning",
		RiskLevel:   SeverityHigh,
	},
	{
		Name:        "Poisoning Attack",
		Description: "Attacker distributes corrupted file chunks",
		Mitigation:  "Cryptographic hash verification",
		RiskLevel:   SeverityMedium,
	},
	{
		Name:        "Traffic Analysis",
		Description: "Attacker analyzes network patterns",
		Mitigation:  "Traffic obfuscation, Tor integration",
		RiskLevel:   SeverityMedium,
	},
}

func getAttackCatalog() []AttackClass {
	out := make([]AttackClass, len(attackCatalog))
	copy(out, attackCatalog)
	return out
}

// Recommendations builds one advisory per catalog entry. Implemented is always
// false: nothing here inspects an actual application.
func Recommendations() []Recommendation {
	catalog := getAttackCatalog()
	recs := make([]Recommendation, 0, len(catalog))
	for _, attack := range catalog {
		recs = append(recs, Recommendation{
			Vulnerability: attack.Name,
			Description:   attack.Description,
			Mitigation:    attack.Mitigation,
			Priority:      attack.RiskLevel,
			Implemented:   false,
		})
	}
	return recs
}
