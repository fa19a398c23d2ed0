package siteroute

import (
	"strings"

	"github.com/pagefarm/pagefarm/pkg/hostrouter"
	"github.com/pagefarm/pagefarm/pkg/locations"
	"github.com/pagefarm/pagefarm/pkg/slug"
)

// Kind is the tenant type a host resolves to.
type Kind int

const (
	KindRoot Kind = iota
	KindWWW
	KindCity
	KindState
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindWWW:
		return "www"
	case KindCity:
		return "city-subdomain"
	case KindState:
		return "state-subdomain"
	default:
		return "unknown"
	}
}

// Directory is the lookup surface the router needs from the location registry.
type Directory interface {
	ByID(id string) (locations.Location, bool)
	BySubdomain(sub string) (locations.Location, bool)
}

// Classification is the outcome of Classify.
type Classification struct {
	// Subdomain is the normalized label left of the base domain.
	Subdomain string
	// ID is the tenant key used in internal paths: the canonical location
	// id for cities, the lowercase code for states.
	ID       string
	Segments []string
	Location locations.Location
	Kind     Kind
}

// Tenant reports whether the classification names a city or a state.
func (c Classification) Tenant() bool {
	return c.Kind == KindCity || c.Kind == KindState
}

// Classifier maps hosts to tenants.
type Classifier struct {
	dir        Directory
	baseDomain string
	rootLabels map[string]struct{}
}

// NewClassifier creates a classifier for hosts under baseDomain.
// rootAliases are extra subdomain labels treated as the root site, such as
// the brand name; "localhost" is always one.
func NewClassifier(baseDomain string, dir Directory, rootAliases ...string) *Classifier {
	c := &Classifier{
		dir:        dir,
		baseDomain: hostrouter.Normalize(baseDomain),
		rootLabels: map[string]struct{}{"localhost": {}},
	}
	for _, a := range rootAliases {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			c.rootLabels[a] = struct{}{}
		}
	}
	return c
}

// Classify resolves host to a tenant. Hosts outside the base domain, and
// hosts that cannot be parsed, classify as root.
func (c *Classifier) Classify(host string, segments []string) Classification {
	out := Classification{Kind: KindRoot, Segments: segments}

	sub := hostrouter.Subdomain(host, c.baseDomain)
	out.Subdomain = sub
	if sub == "" {
		return out
	}
	if sub == "www" {
		out.Kind = KindWWW
		return out
	}
	if _, ok := c.rootLabels[sub]; ok {
		return out
	}
	if len(sub) == 2 && locations.IsStateCode(sub) {
		out.Kind = KindState
		out.ID = sub
		if c.dir != nil {
			if stateSlug, ok := locations.StateSlug(sub); ok {
				out.Location, _ = c.dir.ByID(stateSlug)
			}
		}
		return out
	}
	if c.dir != nil {
		if loc, ok := c.dir.BySubdomain(sub); ok {
			out.Kind = KindCity
			out.ID = loc.ID
			out.Location = loc
			return out
		}
	}
	out.Kind = KindUnknown
	return out
}

// GenerateSubdomain derives the subdomain label for a location display name.
func GenerateSubdomain(name string) string {
	return slug.Subdomain(name)
}
