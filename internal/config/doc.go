// Package config defines installer settings and provides helpers to load,
// validate and save them in YAML format.
//
// Every field has a default matching the stock Kiro distribution, so running
// without a settings file installs the official stable Linux x64 build next
// to the kiro-get executable.
package config
