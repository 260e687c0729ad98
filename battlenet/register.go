package battlenet

import (
	"github.com/blogem/battlenet-login/authenticator"
	"github.com/blogem/battlenet-login/registry"
)

// Factory returns a registry factory producing Battle.net drivers with opts applied
func Factory(opts ...Option) registry.Factory {
	return func(cfg authenticator.Config) (authenticator.Driver, error) {
		d, err := New(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

// Register adds the Battle.net driver to reg under Name
func Register(reg *registry.Registry, opts ...Option) error {
	return reg.Register(Name, Factory(opts...))
}
