package model

import "strings"

// usStates maps USPS abbreviations to the state names used in the dataset.
var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas", "CA": "California",
	"CO": "Colorado", "CT": "Connecticut", "DE": "Delaware", "FL": "Florida", "GA": "Georgia",
	"HI": "Hawaii", "ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey",
	"NM": "New Mexico", "NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	"DC": "District Of Columbia",
}

// stateNames is the reverse index, keyed by lower-cased name.
var stateNames = func() map[string]string {
	m := make(map[string]string, len(usStates))
	for _, name := range usStates {
		m[strings.ToLower(name)] = name
	}
	return m
}()

// StateForAbbreviation resolves a two-letter abbreviation, case-insensitively.
func StateForAbbreviation(abbr string) (string, bool) {
	name, ok := usStates[strings.ToUpper(strings.TrimSpace(abbr))]
	return name, ok
}

// CanonicalStateName returns the dataset spelling of a full state name.
func CanonicalStateName(name string) (string, bool) {
	canon, ok := stateNames[strings.ToLower(strings.TrimSpace(name))]
	return canon, ok
}

// StateCount is the number of known states (50 plus the District of Columbia).
func StateCount() int { return len(usStates) }
