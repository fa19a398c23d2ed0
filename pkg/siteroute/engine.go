package siteroute

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pagefarm/pagefarm/pkg/hostrouter"
	"github.com/pagefarm/pagefarm/pkg/locations"
)

// Action is what the server does with a request.
type Action int

const (
	ActionPass Action = iota
	ActionRedirect
	ActionRewrite
)

func (a Action) String() string {
	switch a {
	case ActionRedirect:
		return "redirect"
	case ActionRewrite:
		return "rewrite"
	default:
		return "pass"
	}
}

// Decision is the single action chosen for a request.
type Decision struct {
	// Rule names the rule that produced the decision.
	Rule string
	// URL is the absolute redirect target.
	URL string
	// Path is the internal path for rewrites.
	Path   string
	Route  Classification
	Action Action
	Status int
}

// Request is the input every rule sees.
type Request struct {
	Host     string
	Path     string
	RawQuery string
	Segments []string
	Route    Classification
}

// Rule is one step of the routing table. Match reports whether the rule
// applies and, if so, the decision to take.
type Rule struct {
	Match func(Request) (Decision, bool)
	Name  string
}

// Engine evaluates the routing table in order; the first matching rule wins.
type Engine struct {
	classifier *Classifier
	services   map[string]struct{}
	pages      map[string]struct{}
	blocked    map[string]struct{}
	cfg        Config
	rules      []Rule
}

// New creates an engine for cfg backed by dir.
func New(cfg Config, dir Directory) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:        cfg,
		classifier: NewClassifier(cfg.BaseDomain, dir, cfg.RootAliases...),
		services:   toSet(cfg.ServiceSlugs),
		pages:      toSet(cfg.TopLevelPages),
		blocked:    toSet(cfg.BlockedSegments),
	}
	e.rules = []Rule{
		{Name: "canonical-host", Match: e.canonicalHost},
		{Name: "legacy-location-path", Match: e.legacyLocationPath(dir)},
		{Name: "legacy-state-path", Match: e.legacyStatePath},
		{Name: "root-pass-through", Match: e.rootPassThrough},
		{Name: "subdomain-home", Match: e.subdomainHome},
		{Name: "subdomain-page", Match: e.subdomainPage},
		{Name: "subdomain-service", Match: e.subdomainService},
		{Name: "duplicate-content", Match: e.duplicateContent},
		{Name: "invalid-subdomain", Match: e.invalidSubdomain},
		{Name: "pass-through", Match: passThrough},
	}
	return e
}

// Rules returns the routing table in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Classifier returns the host classifier used by the engine.
func (e *Engine) Classifier() *Classifier {
	return e.classifier
}

// Prepare builds the rule input for a request.
func (e *Engine) Prepare(host, path, rawQuery string) Request {
	segs := Segments(path)
	return Request{
		Host:     hostrouter.Normalize(host),
		Path:     path,
		RawQuery: rawQuery,
		Segments: segs,
		Route:    e.classifier.Classify(host, segs),
	}
}

// Decide picks the action for host+path. It never panics: a failing rule
// results in pass-through.
func (e *Engine) Decide(host, path, rawQuery string) (d Decision) {
	defer func() {
		if rec := recover(); rec != nil {
			d = Decision{Action: ActionPass, Rule: fmt.Sprintf("recovered: %v", rec)}
		}
	}()

	req := e.Prepare(host, path, rawQuery)
	for _, r := range e.rules {
		if d, ok := r.Match(req); ok {
			d.Rule = r.Name
			d.Route = req.Route
			return d
		}
	}
	return Decision{Action: ActionPass, Rule: "pass-through", Route: req.Route}
}

// DecideRequest is Decide for an *http.Request.
func (e *Engine) DecideRequest(r *http.Request) Decision {
	return e.Decide(r.Host, r.URL.Path, r.URL.RawQuery)
}

func (e *Engine) canonicalHost(r Request) (Decision, bool) {
	if r.Route.Kind != KindWWW {
		return Decision{}, false
	}
	return e.redirect("", r.Path, r.RawQuery), true
}

func (e *Engine) legacyLocationPath(dir Directory) func(Request) (Decision, bool) {
	return func(r Request) (Decision, bool) {
		if dir == nil || !e.onApex(r) || len(r.Segments) < 2 || r.Segments[0] != "locations" {
			return Decision{}, false
		}
		loc, ok := dir.ByID(r.Segments[1])
		if !ok || loc.Virtual {
			return Decision{}, false
		}
		return e.redirect(loc.ID, joinPath(r.Segments[2:]), r.RawQuery), true
	}
}

func (e *Engine) legacyStatePath(r Request) (Decision, bool) {
	if !e.onApex(r) || len(r.Segments) < 2 || r.Segments[0] != "states" {
		return Decision{}, false
	}
	code := strings.ToLower(r.Segments[1])
	if len(code) != 2 || !locations.IsStateCode(code) {
		return Decision{}, false
	}
	return e.redirect(code, joinPath(r.Segments[2:]), r.RawQuery), true
}

func (e *Engine) rootPassThrough(r Request) (Decision, bool) {
	if r.Route.Kind == KindRoot || r.Route.Kind == KindWWW {
		return Decision{Action: ActionPass}, true
	}
	return Decision{}, false
}

func (e *Engine) subdomainHome(r Request) (Decision, bool) {
	if !r.Route.Tenant() || len(r.Segments) != 0 {
		return Decision{}, false
	}
	return rewrite(tenantPath(r.Route)), true
}

func (e *Engine) subdomainPage(r Request) (Decision, bool) {
	if !r.Route.Tenant() || len(r.Segments) != 1 {
		return Decision{}, false
	}
	if _, ok := e.pages[r.Segments[0]]; !ok {
		return Decision{}, false
	}
	return rewrite(tenantPath(r.Route) + "/" + r.Segments[0]), true
}

func (e *Engine) subdomainService(r Request) (Decision, bool) {
	if !r.Route.Tenant() || len(r.Segments) != 1 {
		return Decision{}, false
	}
	if _, ok := e.services[r.Segments[0]]; !ok {
		return Decision{}, false
	}
	return rewrite(tenantPath(r.Route) + "/" + r.Segments[0]), true
}

func (e *Engine) duplicateContent(r Request) (Decision, bool) {
	if !r.Route.Tenant() || len(r.Segments) == 0 {
		return Decision{}, false
	}
	if _, ok := e.blocked[r.Segments[0]]; !ok {
		return Decision{}, false
	}
	return e.redirect("", r.Path, r.RawQuery), true
}

func (e *Engine) invalidSubdomain(r Request) (Decision, bool) {
	if r.Route.Kind != KindUnknown {
		return Decision{}, false
	}
	return e.redirect("", r.Path, r.RawQuery), true
}

func passThrough(Request) (Decision, bool) {
	return Decision{Action: ActionPass}, true
}

func (e *Engine) onApex(r Request) bool {
	return hostrouter.IsApex(r.Host, e.cfg.BaseDomain)
}

// URL builds a public URL on label.BaseDomain, or on the base domain itself
// when label is empty, using the configured scheme and port.
func (e *Engine) URL(label, path, rawQuery string) string {
	host := hostrouter.Normalize(e.cfg.BaseDomain)
	if label != "" {
		host = label + "." + host
	}
	if e.cfg.Port != "" {
		host += ":" + e.cfg.Port
	}
	if path == "" {
		path = "/"
	}
	u := url.URL{Scheme: e.cfg.Scheme, Host: host, Path: path, RawQuery: rawQuery}
	return u.String()
}

// LocationURL returns the public URL of path on a location's subdomain.
func (e *Engine) LocationURL(loc locations.Location, path string) string {
	return e.URL(loc.ID, path, "")
}

// StateURL returns the public URL of path on a state's subdomain.
func (e *Engine) StateURL(code, path string) string {
	return e.URL(strings.ToLower(code), path, "")
}

// redirect builds a 301 to label.BaseDomain, or to the base domain itself when label is empty.
func (e *Engine) redirect(label, path, rawQuery string) Decision {
	return Decision{Action: ActionRedirect, Status: http.StatusMovedPermanently, URL: e.URL(label, path, rawQuery)}
}

func rewrite(path string) Decision {
	return Decision{Action: ActionRewrite, Path: path}
}

func tenantPath(c Classification) string {
	if c.Kind == KindState {
		return "/states/" + c.ID
	}
	return "/locations/" + c.ID
}

// Segments splits a URL path into its non-empty segments.
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinPath(segs []string) string {
	return "/" + strings.Join(segs, "/")
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[strings.ToLower(it)] = struct{}{}
	}
	return set
}
