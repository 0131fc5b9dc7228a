package app

import (
	"encoding/json"
	"errors"
)

const (
	PostCursorTypeCategory PostCursorType = "CATEGORY"
	PostCursorTypeTrending PostCursorType = "TRENDING"
	PostCursorTypeByAuthor PostCursorType = "BY_AUTHOR"
)

var (
	ErrUnknownCursorType = errors.New("unknown cursor type")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrMissingAuthor     = errors.New("author id is required")
)

type TaggedUnionCursor struct {
	PostCursor
	CursorType PostCursorType
}

func (tuc *TaggedUnionCursor) UnmarshalJSON(data []byte) error {
	if tuc == nil {
		return nil
	}
	var rawJsonWithType struct {
		CursorType PostCursorType   `json:"cursorType"`
		Raw        *json.RawMessage `json:"cursor"`
	}
	if err := json.Unmarshal(data, &rawJsonWithType); err != nil {
		return err
	}

	tuc.CursorType = rawJsonWithType.CursorType

	var cursorRef interface{}
	switch rawJsonWithType.CursorType {
	case PostCursorTypeCategory:
		cursorRef = &CategoryCursor{}
	case PostCursorTypeTrending:
		cursorRef = &TrendingCursor{}
	case PostCursorTypeByAuthor:
		cursorRef = &ByAuthorCursor{}
	default:
		return ErrUnknownCursorType
	}

	if rawJsonWithType.Raw != nil {
		if err := json.Unmarshal(*rawJsonWithType.Raw, cursorRef); err != nil {
			return err
		}
	}

	tuc.PostCursor = cursorRef.(PostCursor)
	return nil
}

func (tuc *TaggedUnionCursor) MarshalJSON() ([]byte, error) {
	panic("should not be marshalled")
}
