package handlers

import (
	"net/url"

	"otoran/internal/digest"
	"otoran/internal/domain"
	"otoran/internal/tagfilter"
)

// videoItem is a video as rendered in the digest list
type videoItem struct {
	domain.Video
	TagList        []string
	NormalizedTags string
	Hidden         bool
}

// tagOption is one checkbox of the tag filter
type tagOption struct {
	Tag     string
	Count   int
	Key     string
	Checked bool
}

// digestPage is the data passed to digest.html
type digestPage struct {
	Title        string
	Digest       *domain.Digest
	Videos       []videoItem
	MajorTags    []tagOption
	FilterActive bool
}

// newDigestPage prepares a digest for rendering. A form submission
// (filter=1) is a change of the tag filter and is persisted; a plain visit
// restores the stored selection without writing it back.
func newDigestPage(d *domain.Digest, storage tagfilter.Storage, query url.Values) *digestPage {
	keys := make([]string, len(d.MajorTags))
	for i, tc := range d.MajorTags {
		keys[i] = digest.Normalize(tc.Tag)
	}

	filter := tagfilter.New(storage, keys)
	if query.Get("filter") != "" {
		filter.Apply(tagfilter.Changed, query["tags"])
	} else {
		filter.Restore()
	}

	options := make([]tagOption, len(d.MajorTags))
	for i, tc := range d.MajorTags {
		options[i] = tagOption{
			Tag:     tc.Tag,
			Count:   tc.Count,
			Key:     keys[i],
			Checked: filter.Checked(keys[i]),
		}
	}

	videos := make([]videoItem, len(d.Videos))
	for i, v := range d.Videos {
		tags := v.TagList()
		padded := tagfilter.Pad(digest.NormalizeAll(tags))
		videos[i] = videoItem{
			Video:          v,
			TagList:        tags,
			NormalizedTags: padded,
			Hidden:         !filter.Visible(padded),
		}
	}

	return &digestPage{
		Title:        d.Day.Format(dayTitleLayout) + "に投稿された" + d.Collection.Name,
		Digest:       d,
		Videos:       videos,
		MajorTags:    options,
		FilterActive: filter.Active(),
	}
}
