package karate

import (
	"strconv"
	"strings"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/postman"
)

// FeaturePaths derives one archive path per flattened request from its folder
// path and name. Paths are deterministic and collision-free: duplicates get a
// numeric suffix (-2, -3, ...) in traversal order. The returned slice is
// index-aligned with reqs.
func FeaturePaths(reqs []postman.FlattenedRequest) []string {
	paths := make([]string, 0, len(reqs))
	taken := map[string]bool{
		// Reserve the shared feature so a request named "common" at the
		// collection root cannot collide with it.
		CommonFeaturePath: true,
	}

	for _, fr := range reqs {
		parts := make([]string, 0, len(fr.Folders)+1)
		parts = append(parts, "features")
		for _, folder := range fr.Folders {
			parts = append(parts, slugify(folder))
		}
		parts = append(parts, slugify(fr.Name))
		base := strings.Join(parts, "/")

		path := base + ".feature"
		for n := 2; taken[path]; n++ {
			path = base + "-" + strconv.Itoa(n) + ".feature"
		}
		taken[path] = true
		paths = append(paths, path)
	}
	return paths
}

// slugify lowercases a name and squeezes every run of non-alphanumeric
// characters into a single dash.
func slugify(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		default:
			if !dash && sb.Len() > 0 {
				sb.WriteByte('-')
				dash = true
			}
		}
	}
	slug := strings.TrimSuffix(sb.String(), "-")
	if slug == "" {
		return "request"
	}
	return slug
}
