package resolve

import "strings"

// Source is one allow-list entry: a publisher display name and the domain
// substring that identifies it.
type Source struct {
	Name   string
	Domain string
}

// Resolver maps links to known publishers via the allow-list. Entry order is
// significant: the first matching entry wins, so the list must be kept in
// insertion order.
type Resolver struct {
	sources []Source
	rank    map[string]int
}

// New builds a resolver from the ordered allow-list and the publisher trust
// order (most trusted first) used when collapsing near-duplicates.
func New(sources []Source, trustOrder []string) *Resolver {
	rank := make(map[string]int, len(trustOrder))
	for i, name := range trustOrder {
		rank[name] = len(trustOrder) - i
	}
	return &Resolver{sources: sources, rank: rank}
}

// ExtractDomain returns the bare hostname of a URL: scheme stripped,
// everything past the first slash dropped, leading "www." removed.
// Malformed input degrades to best-effort substring work, never an error.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if idx := strings.Index(rawURL, "://"); idx >= 0 {
		rawURL = rawURL[idx+3:]
	}
	domain, _, _ := strings.Cut(rawURL, "/")
	return strings.TrimPrefix(domain, "www.")
}

// Resolve returns the publisher display name and domain for a link. Unknown
// domains pass through as their own display name; that is not an error.
func (r *Resolver) Resolve(link string) (name, domain string) {
	domain = ExtractDomain(link)
	for _, src := range r.sources {
		if src.Domain != "" && strings.Contains(domain, src.Domain) {
			return src.Name, domain
		}
	}
	return domain, domain
}

// Allowed reports whether the link's domain matches any allow-list entry.
// Links without an extractable domain cannot be verified and are rejected.
func (r *Resolver) Allowed(link string) bool {
	domain := ExtractDomain(link)
	if domain == "" {
		return false
	}
	for _, src := range r.sources {
		if src.Domain != "" && strings.Contains(domain, src.Domain) {
			return true
		}
	}
	return false
}

// Rank returns the trust rank of a publisher (higher is more trusted) along
// with the maximum rank in the table. Unranked publishers score zero.
func (r *Resolver) Rank(sourceName string) (rank, max int) {
	return r.rank[sourceName], len(r.rank)
}
