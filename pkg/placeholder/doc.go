// Package placeholder resolves {TOKEN} and {{TOKEN}} markers in stored content.
//
// Content files carry two token families: the single-brace {CITY}, {STATE},
// {PHONE}, {COMPANY} and the double-brace {{CITY}}, {{STATE}},
// {{COMPANY_NAME}}, {{PHONE}}. Both are resolved in one left-to-right pass
// from a typed Bindings map. Tokens without a binding stay as they are, so
// Resolve never fails and never half-substitutes a token.
//
//	b := placeholder.Bindings{
//	    placeholder.City:        "Austin",
//	    placeholder.State:       "TX",
//	    placeholder.CompanyName: "Acme Roofing",
//	}
//	placeholder.Resolve("{{COMPANY_NAME}} serves {CITY}, {STATE}", b)
//	// "Acme Roofing serves Austin, TX"
//
// Find returns the token inventory of a string. Bulk content edits compare
// inventories with SameTokens so that rewritten copy keeps every placeholder.
package placeholder
