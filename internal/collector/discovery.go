package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSnapshotPatterns match saved page snapshots under an audit root.
var DefaultSnapshotPatterns = []string{"**/*.html", "**/*.htm"}

// Snapshot is one discovered saved page.
type Snapshot struct {
	Path    string
	RelPath string
	Size    int64
}

// DiscoverSnapshots walks an audit root for saved page files matching the
// given glob patterns (DefaultSnapshotPatterns when empty). Results are
// deduplicated and sorted by relative path for stable batch order.
func DiscoverSnapshots(root string, patterns []string) ([]Snapshot, error) {
	if len(patterns) == 0 {
		patterns = DefaultSnapshotPatterns
	}

	seen := make(map[string]bool)
	var snapshots []Snapshot
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(os.DirFS(root), pattern)
		if err != nil {
			return nil, fmt.Errorf("evaluating pattern %s: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			fullPath := filepath.Join(root, match)
			info, err := os.Stat(fullPath)
			if err != nil || info.IsDir() {
				continue
			}
			snapshots = append(snapshots, Snapshot{
				Path:    fullPath,
				RelPath: match,
				Size:    info.Size(),
			})
		}
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].RelPath < snapshots[j].RelPath
	})
	return snapshots, nil
}
