package locations

import (
	"slices"
	"strings"
)

type state struct {
	code string
	name string
	slug string
	zip  string
}

// states is the fixed table of the 50 US states. zip is a representative
// downtown zip in the state capital, used when no location carries real data.
var states = []state{
	{"AL", "Alabama", "alabama", "36104"},
	{"AK", "Alaska", "alaska", "99801"},
	{"AZ", "Arizona", "arizona", "85004"},
	{"AR", "Arkansas", "arkansas", "72201"},
	{"CA", "California", "california", "95814"},
	{"CO", "Colorado", "colorado", "80202"},
	{"CT", "Connecticut", "connecticut", "06103"},
	{"DE", "Delaware", "delaware", "19901"},
	{"FL", "Florida", "florida", "32301"},
	{"GA", "Georgia", "georgia", "30303"},
	{"HI", "Hawaii", "hawaii", "96813"},
	{"ID", "Idaho", "idaho", "83702"},
	{"IL", "Illinois", "illinois", "62701"},
	{"IN", "Indiana", "indiana", "46204"},
	{"IA", "Iowa", "iowa", "50309"},
	{"KS", "Kansas", "kansas", "66603"},
	{"KY", "Kentucky", "kentucky", "40601"},
	{"LA", "Louisiana", "louisiana", "70802"},
	{"ME", "Maine", "maine", "04330"},
	{"MD", "Maryland", "maryland", "21401"},
	{"MA", "Massachusetts", "massachusetts", "02108"},
	{"MI", "Michigan", "michigan", "48933"},
	{"MN", "Minnesota", "minnesota", "55102"},
	{"MS", "Mississippi", "mississippi", "39201"},
	{"MO", "Missouri", "missouri", "65101"},
	{"MT", "Montana", "montana", "59601"},
	{"NE", "Nebraska", "nebraska", "68508"},
	{"NV", "Nevada", "nevada", "89701"},
	{"NH", "New Hampshire", "new-hampshire", "03301"},
	{"NJ", "New Jersey", "new-jersey", "08608"},
	{"NM", "New Mexico", "new-mexico", "87501"},
	{"NY", "New York", "new-york", "12207"},
	{"NC", "North Carolina", "north-carolina", "27601"},
	{"ND", "North Dakota", "north-dakota", "58501"},
	{"OH", "Ohio", "ohio", "43215"},
	{"OK", "Oklahoma", "oklahoma", "73102"},
	{"OR", "Oregon", "oregon", "97301"},
	{"PA", "Pennsylvania", "pennsylvania", "17101"},
	{"RI", "Rhode Island", "rhode-island", "02903"},
	{"SC", "South Carolina", "south-carolina", "29201"},
	{"SD", "South Dakota", "south-dakota", "57501"},
	{"TN", "Tennessee", "tennessee", "37219"},
	{"TX", "Texas", "texas", "78701"},
	{"UT", "Utah", "utah", "84111"},
	{"VT", "Vermont", "vermont", "05602"},
	{"VA", "Virginia", "virginia", "23219"},
	{"WA", "Washington", "washington", "98501"},
	{"WV", "West Virginia", "west-virginia", "25301"},
	{"WI", "Wisconsin", "wisconsin", "53703"},
	{"WY", "Wyoming", "wyoming", "82001"},
}

var (
	statesByCode = make(map[string]state, len(states))
	statesBySlug = make(map[string]state, len(states))
)

func init() {
	for _, s := range states {
		statesByCode[s.code] = s
		statesBySlug[s.slug] = s
	}
}

// StateSlug returns the lowercase hyphenated slug for a state code ("IA" -> "iowa").
// The code is matched case-insensitively.
func StateSlug(code string) (string, bool) {
	s, ok := statesByCode[strings.ToUpper(code)]
	return s.slug, ok
}

// StateCode returns the uppercase code for a state slug ("new-york" -> "NY").
func StateCode(slug string) (string, bool) {
	s, ok := statesBySlug[strings.ToLower(slug)]
	return s.code, ok
}

// StateName returns the display name for a state code, or "" when unknown.
func StateName(code string) string {
	return statesByCode[strings.ToUpper(code)].name
}

// IsStateCode reports whether code is one of the 50 recognized codes, ignoring case.
func IsStateCode(code string) bool {
	_, ok := statesByCode[strings.ToUpper(code)]
	return ok
}

// StateCodes returns all 50 codes in alphabetical order.
func StateCodes() []string {
	codes := make([]string, 0, len(states))
	for _, s := range states {
		codes = append(codes, s.code)
	}
	slices.Sort(codes)
	return codes
}

func fallbackZip(code string) string {
	return statesByCode[strings.ToUpper(code)].zip
}
