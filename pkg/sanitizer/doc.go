// Package sanitizer cleans HTML from content files and visitor input with bluemonday policies.
package sanitizer
