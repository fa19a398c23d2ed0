package locations

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pagefarm/pagefarm/pkg/slug"
)

// DefaultNearbyLimit is used by Nearby when limit is not positive.
const DefaultNearbyLimit = 24

// Registry is an immutable, concurrency-safe index over a fixed set of locations.
type Registry struct {
	locations   []Location
	byID        map[string]int
	bySubdomain map[string]int
	byState     map[string][]int // indexes sorted by name, then id
	stateZip    map[string]string
}

// NewRegistry validates locs and builds the lookup indexes.
// Every problem found is reported in the returned error, not just the first one.
func NewRegistry(locs []Location) (*Registry, error) {
	r := &Registry{
		locations:   make([]Location, 0, len(locs)),
		byID:        make(map[string]int, len(locs)),
		bySubdomain: make(map[string]int, len(locs)),
		byState:     make(map[string][]int),
		stateZip:    make(map[string]string),
	}

	var errs []error
	for i, loc := range locs {
		loc = loc.clone()
		loc.ID = strings.TrimSpace(loc.ID)
		loc.Name = strings.TrimSpace(loc.Name)
		loc.State = strings.ToUpper(strings.TrimSpace(loc.State))
		loc.Virtual = false

		if err := validate(loc); err != nil {
			errs = append(errs, fmt.Errorf("locations[%d] %q: %w", i, loc.ID, err))
			continue
		}
		if _, dup := r.byID[loc.ID]; dup {
			errs = append(errs, fmt.Errorf("locations[%d] %q: %w", i, loc.ID, ErrDuplicateID))
			continue
		}
		if loc.FullName == "" {
			loc.FullName = loc.Name + ", " + loc.State
		}

		idx := len(r.locations)
		r.locations = append(r.locations, loc)
		r.byID[loc.ID] = idx
		r.byState[loc.State] = append(r.byState[loc.State], idx)
		if _, ok := r.stateZip[loc.State]; !ok {
			if zips := filterZips(loc.ZipCodes); len(zips) > 0 {
				r.stateZip[loc.State] = zips[0]
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Ids win over name-derived labels; among labels the first entry wins.
	for idx, loc := range r.locations {
		if sub := slug.Subdomain(loc.Name); sub != "" {
			if _, taken := r.bySubdomain[sub]; !taken {
				if _, isID := r.byID[sub]; !isID {
					r.bySubdomain[sub] = idx
				}
			}
		}
	}

	for code, idxs := range r.byState {
		slices.SortStableFunc(idxs, func(a, b int) int {
			la, lb := r.locations[a], r.locations[b]
			return cmp.Or(
				cmp.Compare(strings.ToLower(la.Name), strings.ToLower(lb.Name)),
				cmp.Compare(la.ID, lb.ID),
			)
		})
		r.byState[code] = idxs
	}

	return r, nil
}

func validate(loc Location) error {
	var problems []string
	if !idPattern.MatchString(loc.ID) {
		problems = append(problems, "id must be lowercase letters, digits and single hyphens")
	}
	if loc.Name == "" {
		problems = append(problems, "name is required")
	}
	if !IsStateCode(loc.State) {
		problems = append(problems, fmt.Sprintf("unknown state code %q", loc.State))
	}
	for _, z := range loc.ZipCodes {
		if z != "" && !ValidZip(z) {
			problems = append(problems, fmt.Sprintf("malformed zip %q", z))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidLocation, strings.Join(problems, "; "))
}

// Len returns the number of locations.
func (r *Registry) Len() int {
	return len(r.locations)
}

// All returns every location in the order it was defined.
func (r *Registry) All() []Location {
	out := make([]Location, len(r.locations))
	for i, loc := range r.locations {
		out[i] = loc.clone()
	}
	return out
}

// ByID resolves a location id. When id is not a location but is a state slug
// ("iowa"), a virtual statewide location is returned instead.
func (r *Registry) ByID(id string) (Location, bool) {
	if idx, ok := r.byID[id]; ok {
		return r.locations[idx].clone(), true
	}
	code, ok := StateCode(id)
	if !ok {
		return Location{}, false
	}
	return r.virtual(code), true
}

// StateLocation returns the virtual statewide location for a state code.
func (r *Registry) StateLocation(code string) (Location, bool) {
	code = strings.ToUpper(code)
	if !IsStateCode(code) {
		return Location{}, false
	}
	return r.virtual(code), true
}

func (r *Registry) virtual(code string) Location {
	s := statesByCode[code]
	loc := Location{
		ID:       s.slug,
		Name:     s.name,
		State:    s.code,
		FullName: s.name,
		Areas:    []string{StatewideArea},
		Virtual:  true,
	}
	if zip := r.StateZip(code); zip != "" {
		loc.ZipCodes = []string{zip}
	}
	return loc
}

// BySubdomain resolves a subdomain label to a location, matching either the
// location id or the label derived from its display name.
func (r *Registry) BySubdomain(sub string) (Location, bool) {
	sub = strings.ToLower(strings.TrimSpace(sub))
	if sub == "" {
		return Location{}, false
	}
	if idx, ok := r.byID[sub]; ok {
		return r.locations[idx].clone(), true
	}
	if idx, ok := r.bySubdomain[sub]; ok {
		return r.locations[idx].clone(), true
	}
	return Location{}, false
}

// InState returns every location in a state sorted by name.
func (r *Registry) InState(code string) []Location {
	idxs := r.byState[strings.ToUpper(code)]
	out := make([]Location, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, r.locations[idx].clone())
	}
	return out
}

// States returns the codes of states that have at least one location, sorted.
func (r *Registry) States() []string {
	codes := make([]string, 0, len(r.byState))
	for code := range r.byState {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Nearby returns up to limit other locations in the same state, windowed
// alphabetically around currentID: up to limit/2 names before it, the rest
// after it, with either side backfilling when the other runs short. Pages in
// one state therefore link to different neighbours.
//
// When currentID is not among the state's locations the first limit
// locations of the state are returned.
func (r *Registry) Nearby(currentID, state string, limit int) []Location {
	if limit <= 0 {
		limit = DefaultNearbyLimit
	}
	idxs := r.byState[strings.ToUpper(state)]

	pos := slices.IndexFunc(idxs, func(idx int) bool {
		return r.locations[idx].ID == currentID
	})
	if pos < 0 {
		n := min(limit, len(idxs))
		out := make([]Location, 0, n)
		for _, idx := range idxs[:n] {
			out = append(out, r.locations[idx].clone())
		}
		return out
	}

	before, after := idxs[:pos], idxs[pos+1:]
	nAfter := min(len(after), limit-min(len(before), limit/2))
	nBefore := min(len(before), limit-nAfter)

	out := make([]Location, 0, nBefore+nAfter)
	for _, idx := range before[len(before)-nBefore:] {
		out = append(out, r.locations[idx].clone())
	}
	for _, idx := range after[:nAfter] {
		out = append(out, r.locations[idx].clone())
	}
	return out
}

// ZipCodes returns the displayable zip codes of loc. Placeholder and
// malformed values are dropped; when nothing is left the state's
// representative zip is returned alone, or nil if the state has none.
func (r *Registry) ZipCodes(loc Location) []string {
	if zips := filterZips(loc.ZipCodes); len(zips) > 0 {
		return zips
	}
	if zip := r.StateZip(loc.State); zip != "" {
		return []string{zip}
	}
	return nil
}

// OwnZipCodes is ZipCodes without the state fallback.
func (r *Registry) OwnZipCodes(loc Location) []string {
	return filterZips(loc.ZipCodes)
}

// StateZip returns the representative zip of a state: the first real zip of
// the first location in that state with one, else a fixed per-state zip.
func (r *Registry) StateZip(code string) string {
	code = strings.ToUpper(code)
	if zip, ok := r.stateZip[code]; ok {
		return zip
	}
	return fallbackZip(code)
}
