// Package medication serves the pharmacy lookup endpoints from a fixture
// catalog. There is no live pharmacy integration; the catalog stands in for
// one until a supplier feed exists.
package medication

import "strings"

type Pharmacy struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
	Address  string `json:"address"`
	Contact  string `json:"contact"`
}

// Availability describes where a medication can be bought and what can
// substitute for it.
type Availability struct {
	Available              bool       `json:"available"`
	Locations              []string   `json:"locations"`
	Alternatives           []string   `json:"alternatives"`
	NearbyPharmacies       []Pharmacy `json:"nearbyPharmacies"`
	AlternativeMedications []string   `json:"alternativeMedications"`
}

// Details is the monograph-style record returned for any medication name.
type Details struct {
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	Uses               []string `json:"uses"`
	SideEffects        []string `json:"sideEffects"`
	Contraindications  []string `json:"contraindications"`
	DosageInstructions string   `json:"dosageInstructions"`
	Interactions       []string `json:"interactions"`
}

// Catalog answers availability lookups by normalized medication name.
type Catalog struct {
	entries map[string]Availability
}

// NewCatalog builds the fixture catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: map[string]Availability{
		"acetaminophen": {
			Available:    true,
			Locations:    []string{"Pharmacy A", "Pharmacy B", "Pharmacy C"},
			Alternatives: []string{"ibuprofen", "naproxen"},
			NearbyPharmacies: []Pharmacy{
				{Name: "Health Pharmacy", Distance: "0.8 miles", Address: "123 Main St, City", Contact: "555-123-4567"},
				{Name: "MediCare Plus", Distance: "1.2 miles", Address: "456 Oak Ave, City", Contact: "555-987-6543"},
			},
			AlternativeMedications: []string{"Acetaminophen", "Naproxen"},
		},
	}}
}

// Availability looks up a medication by case-insensitive name.
func (c *Catalog) Availability(name string) (Availability, bool) {
	a, ok := c.entries[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// Details returns the monograph for a medication. The catalog has no
// per-medication monographs yet, so every name gets the generic NSAID record.
func (c *Catalog) Details(name string) Details {
	return Details{
		Name:     name,
		Category: "NSAID",
		Uses:     []string{"Pain relief", "Fever reduction", "Anti-inflammatory"},
		SideEffects: []string{
			"Stomach upset", "Heartburn", "Dizziness (rare)",
		},
		Contraindications: []string{
			"Allergy to NSAIDs",
			"History of stomach ulcers",
			"Severe kidney disease",
		},
		DosageInstructions: "Take 1 tablet (400mg) every 6-8 hours with food. Do not exceed 3 tablets in 24 hours.",
		Interactions: []string{
			"Aspirin",
			"Blood thinners",
			"Some high blood pressure medications",
		},
	}
}
