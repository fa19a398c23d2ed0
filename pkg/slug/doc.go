// Package slug generates URL-safe slugs and subdomain labels from display text.
//
// Make folds Latin diacritics to ASCII and joins the remaining words with
// hyphens. contentctl uses it to check location ids and catalog slugs:
//
//	slug.Make("Cañon City CO")                             // "canon-city-co"
//	slug.Make("Coeur d'Alene ID", slug.StripChars("'"))    // "coeur-dalene-id"
//
// Subdomain is the stricter label generator used for city subdomains. It never
// folds or transliterates; anything outside [a-z0-9] is dropped:
//
//	slug.Subdomain("Coeur d'Alene")  // "coeur-dalene"
//	slug.Subdomain("  St. Louis  ")  // "st-louis"
package slug
