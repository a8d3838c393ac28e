package config

// DefaultMappingSet is the mapping set used when none is configured.
const DefaultMappingSet = "default"

// BuiltinMappingSets returns the mapping sets shipped with the binary.
//
// The two sets disagree with each other ("default" rewrites toward
// long-form names, "short_forms" toward short names). They are kept
// side by side and selected by name; neither is derived from the other.
func BuiltinMappingSets() map[string]map[string]string {
	return map[string]map[string]string{
		DefaultMappingSet: {
			"USA":         "United States",
			"Russia":      "Russian Federation",
			"South Korea": "Korea, Republic of",
			"Iran":        "Iran, Islamic Republic of",
			"Vietnam":     "Viet Nam",
		},
		"short_forms": {
			"USA":                       "United States of America",
			"United States":             "United States of America",
			"Russian Federation":        "Russia",
			"Korea, Republic of":        "South Korea",
			"Iran, Islamic Republic of": "Iran",
			"Viet Nam":                  "Vietnam",
			"Vietnam":                   "Vietnam",
			"UK":                        "United Kingdom",
			"Czechia":                   "Czech Republic",
			"Serbia":                    "Republic of Serbia",
			"Tanzania":                  "United Republic of Tanzania",
			"DR Congo":                  "Democratic Republic of the Congo",
			"Hong Kong":                 "China",
			"Macau":                     "China",
			"Turkiye":                   "Turkey",
		},
	}
}
