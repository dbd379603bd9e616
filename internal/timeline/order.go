package timeline

import "sort"

// ResolveOrder returns the clips in the order they should appear on the video
// track. An explicit order is honored only when it is a valid permutation of
// the clip identity set (same length, no duplicates, no unknown identities);
// anything else is discarded in favor of ascending identity so a stale or
// corrupted persisted order can never drop or duplicate clips.
func ResolveOrder(clips []SourceClip, order []int64) []SourceClip {
	byID := make(map[int64]SourceClip, len(clips))
	for _, clip := range clips {
		byID[clip.SceneID] = clip
	}

	if len(order) == len(clips) && len(clips) > 0 {
		seen := make(map[int64]struct{}, len(order))
		resolved := make([]SourceClip, 0, len(order))
		valid := true
		for _, id := range order {
			clip, ok := byID[id]
			if !ok {
				valid = false
				break
			}
			if _, dup := seen[id]; dup {
				valid = false
				break
			}
			seen[id] = struct{}{}
			resolved = append(resolved, clip)
		}
		if valid {
			return resolved
		}
	}

	sorted := make([]SourceClip, len(clips))
	copy(sorted, clips)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SceneID < sorted[j].SceneID
	})
	return sorted
}
