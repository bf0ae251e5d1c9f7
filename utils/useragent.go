package utils

import (
	browser "github.com/EDDYCJY/fake-useragent"
)

const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0"

// PickUserAgent returns the generator consulted once per request. An explicit
// override always wins over rolling.
func PickUserAgent(override string, rolling bool) func() string {
	switch {
	case override != "":
		return func() string { return override }
	case rolling:
		return browser.Random
	default:
		return func() string { return DefaultUserAgent }
	}
}
