// Package config loads Popper options from placement files.
//
// A Document is decoded from YAML, JSON or TOML, checked with validator
// tags, and turned into perch options with Options. A Loader watches a
// source, debounces changes and keeps the last valid Document when a change
// fails, moving through the loading, healthy, degraded and empty states.
package config
