package battlenet

import (
	"fmt"
	"strings"

	"github.com/blogem/battlenet-login/authenticator"
)

// DefaultRegion is used when no region is configured
const DefaultRegion = "us"

const (
	globalHost = "https://oauth.battle.net"
	chinaHost  = "https://oauth.battlenet.com.cn"
	jwksPath   = "/oauth/jwks/certs"
)

var regionHosts = map[string]string{
	"us": globalHost,
	"eu": globalHost,
	"kr": globalHost,
	"tw": globalHost,
	"cn": chinaHost,
}

// hostFor returns the OAuth host serving region
func hostFor(region string) (string, error) {
	host, ok := regionHosts[strings.ToLower(strings.TrimSpace(region))]
	if !ok {
		return "", fmt.Errorf("%s: %w: unknown region %q", Name, authenticator.ErrConfigInvalid, region)
	}
	return host, nil
}

// endpointFor derives the flow URLs from an OAuth host
func endpointFor(base string) authenticator.Endpoint {
	base = strings.TrimRight(base, "/")
	return authenticator.Endpoint{
		AuthURL:     base + "/authorize",
		TokenURL:    base + "/token",
		UserInfoURL: base + "/userinfo",
	}
}
