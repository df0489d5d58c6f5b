// Package route resolves dashboard paths of the form /lab/{labId}/{bucket}.
package route

import (
	"net/url"
	"strings"

	"lab_dashboard/internal/inventory"
)

type Kind string

const (
	KindHome     Kind = "home"
	KindLab      Kind = "lab"
	KindRedirect Kind = "redirect"
)

const (
	HomePath       = "/"
	segmentLab     = "lab"
	bucketWorking  = "working"
	bucketNotWorks = "non-working"
)

// Route is the resolved form of a dashboard path.
type Route struct {
	Kind     Kind             `json:"kind"`
	LabID    string           `json:"labId,omitempty"`
	Bucket   inventory.Bucket `json:"bucket,omitempty"`
	Location string           `json:"location,omitempty"` // set for redirects
}

// Resolve maps a path onto the routing contract. /lab/{id} defaults to the
// working bucket; anything unknown redirects to the listing.
func Resolve(path string) Route {
	segs := segments(path)
	switch {
	case len(segs) == 0:
		return Route{Kind: KindHome}
	case len(segs) == 2 && segs[0] == segmentLab:
		return Route{Kind: KindRedirect, Location: LabPath(segs[1], inventory.BucketWorking)}
	case len(segs) == 3 && segs[0] == segmentLab:
		switch segs[2] {
		case bucketWorking:
			return Route{Kind: KindLab, LabID: segs[1], Bucket: inventory.BucketWorking}
		case bucketNotWorks:
			return Route{Kind: KindLab, LabID: segs[1], Bucket: inventory.BucketNotWorking}
		}
	}
	return Route{Kind: KindRedirect, Location: HomePath}
}

// LabPath builds the canonical path for a lab view.
func LabPath(labID string, bucket inventory.Bucket) string {
	seg := bucketWorking
	if bucket == inventory.BucketNotWorking {
		seg = bucketNotWorks
	}
	return "/" + segmentLab + "/" + url.PathEscape(labID) + "/" + seg
}

func segments(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s == "" {
			continue
		}
		if u, err := url.PathUnescape(s); err == nil {
			s = u
		}
		out = append(out, s)
	}
	return out
}
