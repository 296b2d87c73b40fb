package digest

import (
	"sort"

	"otoran/internal/domain"
)

// Rank returns a copy of videos ordered for display: mylists plus likes, then
// comments, then views, all descending. Ties keep their input order.
func Rank(videos []domain.Video) []domain.Video {
	ranked := make([]domain.Video, len(videos))
	copy(ranked, videos)

	sort.SliceStable(ranked, func(i, j int) bool {
		return rankedBefore(ranked[i], ranked[j])
	})

	return ranked
}

func rankedBefore(a, b domain.Video) bool {
	if a.Popularity() != b.Popularity() {
		return a.Popularity() > b.Popularity()
	}
	if a.CommentCounter != b.CommentCounter {
		return a.CommentCounter > b.CommentCounter
	}
	return a.ViewCounter > b.ViewCounter
}
