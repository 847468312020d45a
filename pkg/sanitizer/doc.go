// Package sanitizer cleans rendered HTML mail bodies with bluemonday.
package sanitizer
