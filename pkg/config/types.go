package config

// Config is the root configuration document.
type Config struct {
	// Server holds listener settings.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`
	// Logging holds log output settings.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	// Routes is the ordered route list. Order breaks specificity ties.
	Routes []RouteConfig `json:"routes" yaml:"routes"`
}

// ServerConfig defines the listener settings.
type ServerConfig struct {
	// Host is the bind address. Defaults to localhost.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	// Port is the listen port. 0 lets the OS assign one.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`
	// ReadTimeout is the HTTP read timeout in seconds.
	ReadTimeout int `json:"readTimeout,omitempty" yaml:"read-timeout,omitempty"`
	// WriteTimeout is the HTTP write timeout in seconds.
	WriteTimeout int `json:"writeTimeout,omitempty" yaml:"write-timeout,omitempty"`
	// TLS enables HTTPS when set.
	TLS *TLSConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// TLSConfig points at the certificate and key files for HTTPS.
type TLSConfig struct {
	CertFile string `json:"certFile" yaml:"cert-file"`
	KeyFile  string `json:"keyFile" yaml:"key-file"`
}

// LoggingConfig defines log output settings.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is the output format: text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// RouteConfig declares one route. Exactly one of the kind blocks
// (Dir, File, Proxy, JSON, Mock) must be set.
type RouteConfig struct {
	// Route is the path pattern: /-separated literals, * (one
	// segment) and ** (one or more segments).
	Route string `json:"route" yaml:"route"`
	// RewritePath is an optional replacement template applied to the
	// matched path before dispatch. Capture references resolve against
	// the route's own pattern.
	RewritePath string `json:"rewritePath,omitempty" yaml:"rewrite-path,omitempty"`
	// ResponseHeaders are merged into every successful response.
	ResponseHeaders map[string]string `json:"responseHeaders,omitempty" yaml:"response-headers,omitempty"`
	// Methods restricts the accepted HTTP methods (case-insensitive).
	// Empty means the handler kind's default applies.
	Methods []string `json:"methods,omitempty" yaml:"methods,omitempty"`

	Dir   *DirRoute   `json:"dir,omitempty" yaml:"dir,omitempty"`
	File  *FileRoute  `json:"file,omitempty" yaml:"file,omitempty"`
	Proxy *ProxyRoute `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	JSON  *JSONRoute  `json:"json,omitempty" yaml:"json,omitempty"`
	Mock  *MockRoute  `json:"mock,omitempty" yaml:"mock,omitempty"`
}

// DirRoute serves files from a directory, located by the forwarded
// sub-path.
type DirRoute struct {
	Path string `json:"path" yaml:"path"`
}

// FileRoute serves one fixed file.
type FileRoute struct {
	Path string `json:"path" yaml:"path"`
}

// ProxyRoute forwards requests to an upstream URL. The URL must
// include a scheme and authority and may carry a base path and query.
type ProxyRoute struct {
	URL string `json:"url" yaml:"url"`
}

// JSONRoute serves a JSON document store backed by a file.
type JSONRoute struct {
	Path string `json:"path" yaml:"path"`
	// Pretty makes the store write indented JSON to disk.
	Pretty bool `json:"pretty,omitempty" yaml:"pretty,omitempty"`
}

// MockRoute returns a canned response.
type MockRoute struct {
	Status int `json:"status" yaml:"status"`
	// Body is an optional JSON value returned as the response body.
	Body any `json:"body,omitempty" yaml:"body,omitempty"`
}

// Kind returns the route's handler kind name, or "" if no kind block
// is set.
func (r *RouteConfig) Kind() string {
	switch {
	case r.Dir != nil:
		return "dir"
	case r.File != nil:
		return "file"
	case r.Proxy != nil:
		return "proxy"
	case r.JSON != nil:
		return "json"
	case r.Mock != nil:
		return "mock"
	default:
		return ""
	}
}

// kindCount returns how many kind blocks are set.
func (r *RouteConfig) kindCount() int {
	n := 0
	for _, set := range []bool{r.Dir != nil, r.File != nil, r.Proxy != nil, r.JSON != nil, r.Mock != nil} {
		if set {
			n++
		}
	}
	return n
}
