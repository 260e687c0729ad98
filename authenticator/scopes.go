package authenticator

import (
	"sort"

	"golang.org/x/oauth2"
)

// reservedParams are owned by the flow and cannot be overridden by configured options
var reservedParams = map[string]bool{
	"client_id":     true,
	"redirect_uri":  true,
	"response_type": true,
	"scope":         true,
}

// MergeScopes returns the union of the given lists, deduplicated in first-seen order
func MergeScopes(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// AuthCodeURL builds the authorize URL for conf using exactly the given scopes.
// Options are appended in key order so the output is stable.
func AuthCodeURL(conf *oauth2.Config, scopes []string, options map[string]string, opts ...oauth2.AuthCodeOption) string {
	c := *conf
	c.Scopes = MergeScopes(scopes)

	keys := make([]string, 0, len(options))
	for k := range options {
		if !reservedParams[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	all := make([]oauth2.AuthCodeOption, 0, len(keys)+len(opts))
	for _, k := range keys {
		all = append(all, oauth2.SetAuthURLParam(k, options[k]))
	}
	all = append(all, opts...)

	return c.AuthCodeURL("", all...)
}
