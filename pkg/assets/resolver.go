package assets

// Resolver turns source asset names into URLs.
type Resolver interface {
	// Asset resolves a source name to its public URL, base URL and
	// fingerprint included.
	Asset(source string) string
}

type manifestResolver struct {
	manifest *Manifest
	baseURL  string
}

// NewResolver creates a Resolver over a manifest. baseURL is
// prepended to every resolved name, e.g. "/static/" locally or a CDN
// origin in production.
func NewResolver(m *Manifest, baseURL string) Resolver {
	return &manifestResolver{manifest: m, baseURL: baseURL}
}

func (r *manifestResolver) Asset(source string) string {
	return r.baseURL + r.manifest.Resolve(source)
}

type passthrough struct {
	baseURL string
}

// NewPassthroughResolver creates a Resolver that applies only the base
// URL. Development servers use it so asset names stay stable without a
// build step.
func NewPassthroughResolver(baseURL string) Resolver {
	return &passthrough{baseURL: baseURL}
}

func (p *passthrough) Asset(source string) string {
	return p.baseURL + source
}
