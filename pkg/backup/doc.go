// Package backup keeps a copy of a content file before it is overwritten.
//
// Operator tooling that rewrites content in bulk calls [WriteFile], which
// saves the current bytes to a [Store] and then replaces the file atomically
// through a temporary file and rename. Two stores are provided:
//
//   - [LocalStore] writes timestamped .bak files next to each other in a directory.
//   - [S3Store] uploads the snapshot to an S3-compatible bucket.
//
// Example:
//
//	store := backup.NewLocalStore("content/.backups")
//	if err := backup.WriteFile(ctx, store, "content/pages.json", data, 0o644); err != nil {
//		return err
//	}
package backup
