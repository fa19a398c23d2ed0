// Package siteroute maps a request host and path to one routing action.
//
// Hosts are tenants: the apex domain is the root site, "{id}.example.com" is a
// city and "{code}.example.com" is a state. The Engine evaluates an ordered
// table of named rules and the first match wins:
//
//	canonical-host        www.example.com/*            301 to example.com/*
//	legacy-location-path  example.com/locations/{id}/* 301 to {id}.example.com/*
//	legacy-state-path     example.com/states/{code}/*  301 to {code}.example.com/*
//	root-pass-through     root host                    pass
//	subdomain-home        {tenant}/                    rewrite to /locations/{id} or /states/{code}
//	subdomain-page        {tenant}/about|services|contact
//	subdomain-service     {tenant}/{service-slug}
//	duplicate-content     {tenant}/states|locations|api|robots.txt/*  301 to example.com/*
//	invalid-subdomain     unknown subdomain            301 to example.com/*
//	pass-through          anything else                pass
//
// A rewrite changes the path the application routes on while the browser URL
// stays the same. Redirects are always 301 and keep the query string.
//
//	engine := siteroute.New(siteroute.Config{BaseDomain: "example.com"}, registry)
//	d := engine.Decide("austin-tx.example.com", "/", "")
//	// d.Action == siteroute.ActionRewrite, d.Path == "/locations/austin-tx"
//
// Decide never panics and never returns an error.
package siteroute
