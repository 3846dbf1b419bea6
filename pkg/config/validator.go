package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/routeway/routeway/internal/matching"
)

// Validate checks the whole configuration. It returns the first error
// encountered, naming the offending route, so startup can abort before
// the listener binds.
func (c *Config) Validate() error {
	if len(c.Routes) == 0 {
		return errors.New("configuration declares no routes")
	}
	for i := range c.Routes {
		if err := c.Routes[i].validate(); err != nil {
			return fmt.Errorf("error in route %q: %w", c.Routes[i].Route, err)
		}
	}
	return nil
}

func (r *RouteConfig) validate() error {
	if _, err := matching.Compile(r.Route); err != nil {
		return err
	}

	switch n := r.kindCount(); {
	case n == 0:
		return errors.New("route declares no handler kind (dir, file, proxy, json or mock)")
	case n > 1:
		return errors.New("route declares more than one handler kind")
	}

	for _, method := range r.Methods {
		if strings.TrimSpace(method) == "" {
			return errors.New("methods list contains an empty entry")
		}
	}

	switch {
	case r.Dir != nil:
		return r.Dir.validate()
	case r.File != nil:
		return r.File.validate()
	case r.Proxy != nil:
		return r.Proxy.validate()
	case r.JSON != nil:
		return r.JSON.validate()
	default:
		return r.Mock.validate()
	}
}

func (d *DirRoute) validate() error {
	info, err := os.Stat(d.Path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%q is not a directory", d.Path)
	}
	return nil
}

func (f *FileRoute) validate() error {
	info, err := os.Stat(f.Path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%q is not a file", f.Path)
	}
	return nil
}

func (p *ProxyRoute) validate() error {
	u, err := url.Parse(p.URL)
	if err != nil {
		return fmt.Errorf("invalid proxy url %q: %w", p.URL, err)
	}
	if u.Scheme == "" {
		return errors.New("proxy url must include scheme")
	}
	if u.Host == "" {
		return errors.New("proxy url must include authority")
	}
	return nil
}

func (j *JSONRoute) validate() error {
	info, err := os.Stat(j.Path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%q is not a file", j.Path)
	}
	return nil
}

func (m *MockRoute) validate() error {
	if m.Status < 100 || m.Status > 599 {
		return fmt.Errorf("mock status %d is not a valid HTTP status", m.Status)
	}
	return nil
}
