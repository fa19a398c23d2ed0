// Package pagecache stores rendered pages keyed by host, path and query.
//
// Location pages are generated from static content, so a rendered response
// is valid until the next deploy or until its TTL runs out. Two stores are
// available: [Memory], an in-process LRU with TTL expiry, and [Redis], which
// shares entries across replicas. [Render] wraps either one with
// singleflight so concurrent misses for the same page render it once.
//
//	store := pagecache.NewMemory(pagecache.WithMaxEntries(5000))
//	defer store.Close()
//
//	page, err := pagecache.Render(ctx, store, pagecache.Key(host, path, query), ttl,
//		func(ctx context.Context) (pagecache.Page, error) {
//			return renderLocation(ctx, loc)
//		})
//
// TTL semantics for Set: a positive duration expires the entry after that
// duration, zero uses the store default, and a negative duration never expires.
package pagecache
