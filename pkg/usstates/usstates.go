// Package usstates resolves US state and territory names and postal codes.
package usstates

import "strings"

var names = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
	// territories
	"AS": "American Samoa", "GU": "Guam", "MP": "Northern Mariana Islands",
	"PR": "Puerto Rico", "VI": "Virgin Islands",
}

var byName = func() map[string]string {
	m := make(map[string]string, len(names))
	for code, name := range names {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// Lookup resolves s, a postal code or a full name in any case, to the
// two-letter postal code. The District of Columbia is not a state or
// territory and does not resolve.
func Lookup(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if code := strings.ToUpper(s); len(code) == 2 {
		if _, ok := names[code]; ok {
			return code, true
		}
	}
	code, ok := byName[strings.ToLower(s)]
	return code, ok
}

// Name returns the full name for a postal code.
func Name(code string) (string, bool) {
	n, ok := names[strings.ToUpper(code)]
	return n, ok
}

// Len is the number of known states and territories.
func Len() int { return len(names) }
