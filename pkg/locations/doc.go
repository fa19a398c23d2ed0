// Package locations is the registry of serviced cities and the 50 US states.
//
// A Registry is built once from a static list and never mutated, so it can be
// shared by every request without locking:
//
//	reg, err := locations.Load(os.DirFS("content"), "locations.json")
//	if err != nil {
//	    return err // every invalid entry is listed
//	}
//
//	loc, ok := reg.ByID("austin-tx")      // real location
//	iowa, ok := reg.ByID("iowa")          // virtual statewide location
//	near := reg.Nearby("austin-tx", "TX", 24)
//	zips := reg.ZipCodes(loc)             // placeholders removed, state fallback
//
// # States
//
// State codes and slugs form a fixed bijection:
//
//	locations.StateSlug("NY")        // "new-york", true
//	locations.StateCode("new-york")  // "NY", true
//
// Unknown ids, codes and slugs are reported with ok == false; nothing panics.
//
// # Zip codes
//
// Entries must be empty or a 5-digit / ZIP+4 code. Placeholder values such as
// "00000" pass validation but are filtered out whenever zips are read. A
// location left without zips shows its state's representative zip, which is
// the first real zip of any location in the state or a fixed zip in the state
// capital.
package locations
