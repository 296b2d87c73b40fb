package searchapi

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"otoran/internal/domain"
)

// searchResponse mirrors the search API body. Pointers tell a missing field
// apart from a zero value so the validator can reject it.
type searchResponse struct {
	Meta *searchMeta `json:"meta" validate:"required"`
	Data []rawVideo  `json:"data" validate:"required,dive"`
}

type searchMeta struct {
	TotalCount *int `json:"totalCount" validate:"required,gte=0"`
}

type rawVideo struct {
	ContentID      *string    `json:"contentId" validate:"required"`
	Title          *string    `json:"title" validate:"required"`
	ThumbnailURL   *string    `json:"thumbnailUrl" validate:"required"`
	Tags           *string    `json:"tags" validate:"required"`
	ViewCounter    *int       `json:"viewCounter" validate:"required,gte=0"`
	CommentCounter *int       `json:"commentCounter" validate:"required,gte=0"`
	MylistCounter  *int       `json:"mylistCounter" validate:"required,gte=0"`
	LikeCounter    *int       `json:"likeCounter" validate:"required,gte=0"`
	Genre          *string    `json:"genre"`
	UserID         *int64     `json:"userId"`
	ChannelID      *int64     `json:"channelId"`
	StartTime      *time.Time `json:"startTime"`
	LengthSeconds  *int       `json:"lengthSeconds" validate:"omitempty,gte=0"`
}

func (v rawVideo) toDomain() domain.Video {
	video := domain.Video{
		ContentID:      *v.ContentID,
		Title:          *v.Title,
		ThumbnailURL:   *v.ThumbnailURL,
		Tags:           *v.Tags,
		ViewCounter:    *v.ViewCounter,
		CommentCounter: *v.CommentCounter,
		MylistCounter:  *v.MylistCounter,
		LikeCounter:    *v.LikeCounter,
		UserID:         v.UserID,
		ChannelID:      v.ChannelID,
		StartTime:      v.StartTime,
		LengthSeconds:  v.LengthSeconds,
	}
	if v.Genre != nil {
		video.Genre = *v.Genre
	}
	return video
}

type versionResponse struct {
	LastModified *time.Time `json:"last_modified" validate:"required"`
}

// newValidator creates a validator that reports json field names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// schemaError flattens validator errors into one message
func schemaError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag()))
	}
	sort.Strings(fields)

	return fmt.Errorf("schema mismatch: %s", strings.Join(fields, "; "))
}
