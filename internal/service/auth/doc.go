// Package auth issues and validates bearer tokens and hashes user secrets.
package auth
