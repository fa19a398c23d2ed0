// Package content loads the brand copy of a programmatic SEO site: the site
// settings, the service catalog with cost ranges, Markdown cost guides and the
// per-archetype page templates.
//
// Content is read once at startup from a directory holding site, services,
// cost-guides and pages files in JSON or YAML. [Load] rejects unknown fields,
// duplicate slugs, inverted cost ranges, missing page archetypes and
// placeholder tokens outside the fixed vocabulary, reporting every problem at
// once. The resulting [Store] is immutable and safe for concurrent use.
//
//	store, err := content.Load(os.DirFS("content"))
//	if err != nil {
//		return err
//	}
//	page, _ := store.Page(content.PageLocation)
//	page = page.Resolve(store.Bindings(loc, zip, nil))
package content
