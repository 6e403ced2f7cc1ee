package imageurl

import "strings"

// PlaceholderURL is returned for entities that carry no image.
const PlaceholderURL = "https://via.placeholder.com/400x400?text=No+Image"

// Resolver maps image paths stored by the catalog backend to displayable
// absolute URLs. The backend serves images as static paths rooted at its
// origin, so the resolver is constructed from the API base URL with any
// trailing /api suffix stripped.
type Resolver struct {
	origin string
}

func CreateResolver(apiBaseURL string) Resolver {
	origin := strings.TrimRight(apiBaseURL, "/")
	origin = strings.TrimSuffix(origin, "/api")
	return Resolver{origin: origin}
}

// Resolve returns PlaceholderURL for an empty path, returns already-absolute
// URLs unchanged (which also makes Resolve idempotent), and prefixes relative
// paths with the backend origin.
func (r Resolver) Resolve(path string) string {
	if path == "" {
		return PlaceholderURL
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	return r.origin + path
}

// ResolvePtr resolves a nullable image path; nil means "no image".
func (r Resolver) ResolvePtr(path *string) string {
	if path == nil {
		return PlaceholderURL
	}
	return r.Resolve(*path)
}
