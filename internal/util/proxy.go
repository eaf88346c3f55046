// Package util holds the HTTP plumbing shared by the EDGAR and price clients.
package util

import (
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// NewProxyFunc builds a transport proxy function. Explicit settings
// override the HTTP_PROXY, HTTPS_PROXY and NO_PROXY environment variables
// field by field; an https request with only an HTTP proxy configured goes
// through that proxy.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	cfg := httpproxy.FromEnvironment()
	if httpProxy != "" {
		cfg.HTTPProxy = httpProxy
		if httpsProxy == "" && cfg.HTTPSProxy == "" {
			cfg.HTTPSProxy = httpProxy
		}
	}
	if httpsProxy != "" {
		cfg.HTTPSProxy = httpsProxy
	}
	if noProxy != "" {
		cfg.NoProxy = noProxy
	}

	proxy := cfg.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return proxy(req.URL)
	}
}
