package digest

import (
	"sort"

	"otoran/internal/domain"
)

// MinMajorTagCount is the smallest merged count for a tag to be offered as a filter
const MinMajorTagCount = 2

// CountTags counts each exact tag spelling across all videos. Spellings are
// returned in the order they were first seen.
func CountTags(videos []domain.Video) []domain.TagCount {
	index := make(map[string]int)
	var counts []domain.TagCount

	for _, video := range videos {
		for _, tag := range video.TagList() {
			if i, ok := index[tag]; ok {
				counts[i].Count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, domain.TagCount{Tag: tag, Count: 1})
		}
	}

	return counts
}

// MergeTagCounts merges spellings that normalize to the same key. The merged
// entry keeps the spelling with the highest individual count (earliest wins a
// tie) and carries the sum of all counts. Groups keep the order in which their
// key was first seen.
func MergeTagCounts(counts []domain.TagCount) []domain.TagCount {
	index := make(map[string]int)
	merged := make([]domain.TagCount, 0, len(counts))
	// individual count of each group's current representative
	var best []int

	for _, c := range counts {
		key := Normalize(c.Tag)
		i, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, c)
			best = append(best, c.Count)
			continue
		}
		if c.Count > best[i] {
			merged[i].Tag = c.Tag
			best[i] = c.Count
		}
		merged[i].Count += c.Count
	}

	return merged
}

// MajorTags returns the merged tags that occur at least MinMajorTagCount times,
// most frequent first. Equal counts keep their merge order.
func MajorTags(videos []domain.Video) []domain.TagCount {
	merged := MergeTagCounts(CountTags(videos))

	major := make([]domain.TagCount, 0, len(merged))
	for _, tc := range merged {
		if tc.Count >= MinMajorTagCount {
			major = append(major, tc)
		}
	}

	sort.SliceStable(major, func(i, j int) bool {
		return major[i].Count > major[j].Count
	})

	return major
}
