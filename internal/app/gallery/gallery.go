package gallery

import "github.com/supchaser/postergen/internal/app/models"

// Merge appends the incoming URLs that are not already in existing,
// keeping the order of both. Neither argument is modified.
func Merge(existing models.Gallery, incoming []string) models.Gallery {
	seen := make(map[string]struct{}, len(existing.URLs)+len(incoming))
	urls := make([]string, 0, len(existing.URLs)+len(incoming))

	for _, u := range existing.URLs {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	for _, u := range incoming {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	return models.Gallery{URLs: urls}
}

// Added returns the URLs of next that are missing from prev.
func Added(prev, next models.Gallery) []string {
	seen := make(map[string]struct{}, len(prev.URLs))
	for _, u := range prev.URLs {
		seen[u] = struct{}{}
	}

	var added []string
	for _, u := range next.URLs {
		if _, ok := seen[u]; !ok {
			added = append(added, u)
		}
	}
	return added
}
