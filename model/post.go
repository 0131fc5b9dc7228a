package model

import (
	"time"
)

type Category string

const (
	CategoryStartupEssentials        Category = "STARTUP_ESSENTIALS"
	CategoryMarketingBranding        Category = "MARKETING_BRANDING"
	CategoryLegalCompliance          Category = "LEGAL_COMPLIANCE"
	CategoryFinanceInvestment        Category = "FINANCE_INVESTMENT"
	CategorySalesCustomerAcquisition Category = "SALES_CUSTOMER_ACQUISITION"
	CategoryTechnologyTools          Category = "TECHNOLOGY_TOOLS"
	CategoryInspirations             Category = "INSPIRATIONS"
)

var Categories = []Category{
	CategoryStartupEssentials,
	CategoryMarketingBranding,
	CategoryLegalCompliance,
	CategoryFinanceInvestment,
	CategorySalesCustomerAcquisition,
	CategoryTechnologyTools,
	CategoryInspirations,
}

func (c Category) IsValid() bool {
	for _, category := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Kind tags which optional payload fields of a Post are populated
type Kind string

const (
	KindText     Kind = "TEXT"
	KindMedia    Kind = "MEDIA"
	KindEvent    Kind = "EVENT"
	KindOccasion Kind = "OCCASION"
	KindJob      Kind = "JOB_OPENING"
	KindPoll     Kind = "POLL"
	KindDocument Kind = "DOCUMENT"
)

// Media holds stable URLs/blob names issued by the upload collaborator.
// They are opaque strings as far as this service is concerned.
type Media struct {
	Photos []string `json:"photos,omitempty"`
	Videos []string `json:"videos,omitempty"`
}

type Event struct {
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

type Occasion struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

type JobOpening struct {
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	ApplyURL    string `json:"applyUrl,omitempty"`
}

type Document struct {
	Name     string `json:"name"`
	BlobName string `json:"blobName"`
}

type Post struct {
	Id       int64            `json:"id"`
	Creator  *DisplayableUser `json:"creator"`
	Category Category         `json:"category"`
	Kind     Kind             `json:"kind"`
	Text     string           `json:"text,omitempty"`
	Media    *Media           `json:"media,omitempty"`
	Event    *Event           `json:"event,omitempty"`
	Occasion *Occasion        `json:"occasion,omitempty"`
	Job      *JobOpening      `json:"jobOpening,omitempty"`
	Document *Document        `json:"document,omitempty"`
	Poll     *Poll            `json:"poll,omitempty"`

	LikeCount    int `json:"likeCount"`
	CommentCount int `json:"commentCount"`
	// IsLiked is hydrated per viewer at read time and never stored
	IsLiked bool `json:"isLiked"`

	// Comments are populated on detail fetches only; list queries carry counts
	Comments []*Comment `json:"comments,omitempty"`

	Trending  bool      `json:"trending"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	Id        int64            `json:"id"`
	Creator   *DisplayableUser `json:"creator"`
	Text      string           `json:"text"`
	Replies   []*Reply         `json:"replies"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Reply intentionally has no replies field: one nesting level is a structural
// invariant, not a runtime check.
type Reply struct {
	Id        int64            `json:"id"`
	Creator   *DisplayableUser `json:"creator"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"createdAt"`
}

// LikeStatus is the caller-facing result of a like toggle. The caller applies
// it directly instead of re-fetching the post.
type LikeStatus struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}
