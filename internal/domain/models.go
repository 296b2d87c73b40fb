package domain

import (
	"strings"
	"time"
)

// Video represents a single search hit from the snapshot search API
type Video struct {
	ContentID      string     `json:"contentId"`
	Title          string     `json:"title"`
	ThumbnailURL   string     `json:"thumbnailUrl"`
	Tags           string     `json:"tags"`
	ViewCounter    int        `json:"viewCounter"`
	CommentCounter int        `json:"commentCounter"`
	MylistCounter  int        `json:"mylistCounter"`
	LikeCounter    int        `json:"likeCounter"`
	Genre          string     `json:"genre,omitempty"`
	UserID         *int64     `json:"userId,omitempty"`
	ChannelID      *int64     `json:"channelId,omitempty"`
	StartTime      *time.Time `json:"startTime,omitempty"`
	LengthSeconds  *int       `json:"lengthSeconds,omitempty"`
}

// TagList splits the raw tag string into tokens, dropping empty ones
func (v Video) TagList() []string {
	var tags []string
	for _, tag := range strings.Split(v.Tags, " ") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Popularity is the primary ranking signal: mylists plus likes
func (v Video) Popularity() int {
	return v.MylistCounter + v.LikeCounter
}

// TagCount is a tag spelling with its occurrence count
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Collection describes a predefined search shown as a digest
type Collection struct {
	Word    string `json:"word"`
	Query   string `json:"query"`
	Targets string `json:"targets,omitempty"`
	Name    string `json:"name"`
}

// SearchResult is one page of search results
type SearchResult struct {
	TotalCount int     `json:"total_count"`
	Videos     []Video `json:"videos"`
}

// Digest is everything the renderer needs for one day of one collection
type Digest struct {
	Collection Collection `json:"collection"`
	Day        time.Time  `json:"day"`
	Path       string     `json:"path"`
	PrevPath   string     `json:"prev_path"`
	NextPath   string     `json:"next_path"`
	TotalCount int        `json:"total_count"`
	Videos     []Video    `json:"videos"`
	MajorTags  []TagCount `json:"major_tags"`
}

// DigestView represents a logged digest page view
type DigestView struct {
	ID         int       `json:"id" db:"id"`
	Word       string    `json:"word" db:"word"`
	Day        string    `json:"day" db:"day"`
	TotalCount int       `json:"total_count" db:"total_count"`
	ShownCount int       `json:"shown_count" db:"shown_count"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PopularDigest is a digest with its view count over a time window
type PopularDigest struct {
	Count int    `json:"count"`
	Word  string `json:"word"`
	Day   string `json:"day"`
}
