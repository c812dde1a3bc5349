// Package config loads the server settings from the process environment, an
// optional .env file and an optional config.yaml, and validates them before
// anything else starts.
package config
