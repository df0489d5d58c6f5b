package route

import "strings"

// Crumb is one entry of a breadcrumb trail.
type Crumb struct {
	Label   string `json:"label"`
	Path    string `json:"path"`
	Current bool   `json:"current,omitempty"`
}

// Breadcrumbs returns Home followed by one crumb per path segment. The home
// page itself has no trail.
func Breadcrumbs(path string) []Crumb {
	segs := segments(path)
	if len(segs) == 0 {
		return nil
	}
	crumbs := []Crumb{{Label: "Home", Path: HomePath}}
	for i, s := range segs {
		crumbs = append(crumbs, Crumb{
			Label:   displayName(s),
			Path:    "/" + strings.Join(segs[:i+1], "/"),
			Current: i == len(segs)-1,
		})
	}
	return crumbs
}

// displayName turns "non-working" into "Non Working".
func displayName(seg string) string {
	words := strings.Split(seg, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
