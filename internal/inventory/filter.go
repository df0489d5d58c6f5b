package inventory

import (
	"errors"
	"fmt"
	"strings"

	"lab_dashboard/internal/models"
)

// Bucket is a coarse status filter for computers.
type Bucket string

const (
	BucketAll        Bucket = "all"
	BucketWorking    Bucket = "working"
	BucketNotWorking Bucket = "not_working"
)

var ErrUnknownBucket = errors.New("unknown bucket")

// ParseBucket accepts the query spellings ("all", "working", "not_working")
// and the route spelling "non-working". Empty means all.
func ParseBucket(s string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return BucketAll, nil
	case "working":
		return BucketWorking, nil
	case "not_working", "non-working", "not-working":
		return BucketNotWorking, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBucket, s)
	}
}

// Matches reports whether a status falls into the bucket. Maintenance counts
// as not working.
func (b Bucket) Matches(status models.ComputerStatus) bool {
	switch b {
	case BucketWorking:
		return status == models.StatusWorking
	case BucketNotWorking:
		return status != models.StatusWorking
	default:
		return true
	}
}

// FilterLabs keeps labs whose name, location or in-charge contains query,
// case-insensitively. A blank query keeps everything. Input order is preserved
// and the input slice is not modified.
func FilterLabs(labs []models.Lab, query string) []models.Lab {
	q := normalizeQuery(query)
	out := make([]models.Lab, 0, len(labs))
	for _, lab := range labs {
		if q == "" || containsFold(q, lab.Name, lab.Location, lab.InCharge) {
			out = append(out, lab)
		}
	}
	return out
}

// FilterComputers keeps computers that match both the text query (on name or
// id) and the bucket.
func FilterComputers(computers []models.Computer, query string, bucket Bucket) []models.Computer {
	q := normalizeQuery(query)
	out := make([]models.Computer, 0, len(computers))
	for _, c := range computers {
		if q != "" && !containsFold(q, c.Name, c.ID) {
			continue
		}
		if !bucket.Matches(c.Status) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// containsFold expects an already lower-cased needle.
func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
