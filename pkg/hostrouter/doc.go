// Package hostrouter normalizes Host headers for subdomain tenancy.
//
//	host := hostrouter.Normalize("Austin-TX.Example.com:8080") // "austin-tx.example.com"
//	sub := hostrouter.Subdomain(host, "example.com")          // "austin-tx"
//	hostrouter.IsApex(host, "example.com")                     // false
package hostrouter
