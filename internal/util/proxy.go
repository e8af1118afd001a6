// Package util holds the HTTP plumbing shared by the research fetcher
// and the LLM providers: proxy selection and robots.txt compliance.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds a transport proxy function from explicit proxy
// URLs, falling back to the standard environment variables when none
// are configured
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
