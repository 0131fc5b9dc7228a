package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	db2 "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *db2.CreatePost) (int64, error) {
	payload, err := marshalPayload(req)
	if err != nil {
		return 0, err
	}

	var postId int64
	err = pdb.sess.TxContext(ctx, func(sess db.Session) error {
		res, err := sess.SQL().
			InsertInto("post").
			Columns("creator_id", "category", "kind", "text", "media", "event", "occasion", "job_opening", "document").
			Values(req.CreatorId, req.Category, req.Kind, req.Text,
				payload.media, payload.event, payload.occasion, payload.job, payload.document).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		postId, err = res.LastInsertId()
		if err != nil {
			return err
		}

		if req.Poll == nil {
			return nil
		}
		if _, err := sess.SQL().
			InsertInto("poll").
			Columns("post_id", "question", "end_date").
			Values(postId, req.Poll.Question, req.Poll.EndDate).
			ExecContext(ctx); err != nil {
			return err
		}
		batchInserter := sess.SQL().
			InsertInto("poll_option").
			Columns("post_id", "idx", "label").
			Batch(len(req.Poll.Options))
		for i, option := range req.Poll.Options {
			batchInserter.Values(postId, i, option)
		}
		batchInserter.Done()
		return batchInserter.Wait()
	}, nil)
	return postId, err
}

type jsonPayload struct {
	media    sql.NullString
	event    sql.NullString
	occasion sql.NullString
	job      sql.NullString
	document sql.NullString
}

// kind payloads are stored as JSON columns on post; only the poll is
// relational since its counters are updated in place
func marshalPayload(req *db2.CreatePost) (*jsonPayload, error) {
	var payload jsonPayload
	for _, field := range []struct {
		value interface{}
		dest  *sql.NullString
	}{
		{req.Media, &payload.media},
		{req.Event, &payload.event},
		{req.Occasion, &payload.occasion},
		{req.Job, &payload.job},
		{req.Document, &payload.document},
	} {
		if field.value == nil || isNilPtr(field.value) {
			continue
		}
		raw, err := json.Marshal(field.value)
		if err != nil {
			return nil, err
		}
		*field.dest = sql.NullString{String: string(raw), Valid: true}
	}
	return &payload, nil
}

func isNilPtr(value interface{}) bool {
	switch v := value.(type) {
	case *model.Media:
		return v == nil
	case *model.Event:
		return v == nil
	case *model.Occasion:
		return v == nil
	case *model.JobOpening:
		return v == nil
	case *model.Document:
		return v == nil
	}
	return false
}

type flattenedPost struct {
	Id                 int64          `db:"id"`
	CreatorId          string         `db:"creator_id"`
	CreatorDisplayName string         `db:"display_name"`
	CreatorAvatar      string         `db:"avatar"`
	Category           model.Category `db:"category"`
	Kind               model.Kind     `db:"kind"`
	Text               string         `db:"text"`
	MediaJSON          sql.NullString `db:"media"`
	EventJSON          sql.NullString `db:"event"`
	OccasionJSON       sql.NullString `db:"occasion"`
	JobJSON            sql.NullString `db:"job_opening"`
	DocumentJSON       sql.NullString `db:"document"`
	LikeCount          int            `db:"like_count"`
	CommentCount       int            `db:"comment_count"`
	Trending           bool           `db:"trending"`
	LikedBy            sql.NullString `db:"liked_by"`
	CreatedAt          time.Time      `db:"created_at"`
}

var postColumns = []interface{}{
	"p.id",
	"p.creator_id",
	"person.display_name",
	"person.avatar",
	"p.category",
	"p.kind",
	"p.text",
	"p.media",
	"p.event",
	"p.occasion",
	"p.job_opening",
	"p.document",
	"p.like_count",
	"p.comment_count",
	"p.trending",
	"p.created_at",
	db.Raw("pl.user_id as liked_by"),
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64, opts *db2.PostQueryOpts) (*model.Post, error) {
	var flattened flattenedPost
	if err := pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Join("person").On("p.creator_id = person.firebase_id").
		LeftJoin("post_like as pl").On("pl.post_id = p.id AND pl.user_id = ?", opts.LikeHistoryOf).
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&flattened); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, db2.ErrNotFound
		}
		return nil, err
	}

	post, err := buildPostFromFlattened(&flattened)
	if err != nil {
		return nil, err
	}

	if post.Kind == model.KindPoll {
		poll, err := getPoll(ctx, pdb.sess, id, opts.LikeHistoryOf)
		if err != nil {
			return nil, err
		}
		post.Poll = poll
	}

	comments, err := pdb.getComments(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Comments = comments
	return post, nil
}

func (pdb *PostDB) GetPosts(ctx context.Context, query *db2.PostsListQuery) ([]*model.Post, error) {
	sel := pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Join("person").On("p.creator_id = person.firebase_id").
		LeftJoin("post_like as pl").On("pl.post_id = p.id AND pl.user_id = ?", query.LikeHistoryOf).
		Where("(ISNULL(?) OR (p.created_at < ? OR p.created_at = ? AND (? = '' OR p.id < ?)))",
			query.From, query.From, query.From, query.LastId, query.LastId)
	if query.Category != nil {
		sel = sel.And("p.category = ?", *query.Category)
	}
	if query.TrendingOnly {
		sel = sel.And("p.trending = TRUE")
	}
	if query.ByUser != "" {
		sel = sel.And("p.creator_id = ?", query.ByUser)
	}

	var flattenedPosts []flattenedPost
	if err := sel.
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(int(query.Limit)).
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}

	posts := make([]*model.Post, len(flattenedPosts))
	for i, flattened := range flattenedPosts {
		post, err := buildPostFromFlattened(&flattened)
		if err != nil {
			return nil, err
		}
		if post.Kind == model.KindPoll {
			poll, err := getPoll(ctx, pdb.sess, post.Id, query.LikeHistoryOf)
			if err != nil {
				return nil, err
			}
			post.Poll = poll
		}
		posts[i] = post
	}
	return posts, nil
}

func (pdb *PostDB) SetTrending(ctx context.Context, postId int64, trending bool) error {
	res, err := pdb.sess.SQL().ExecContext(ctx, db.Raw(`
UPDATE post SET trending = ? WHERE id = ?
`, trending, postId))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// either the post is missing or the flag already has this value;
		// only the former is an error
		exists, err := pdb.sess.WithContext(ctx).Collection("post").Find("id = ?", postId).Exists()
		if err != nil {
			return err
		}
		if !exists {
			return db2.ErrNotFound
		}
	}
	return nil
}

func buildPostFromFlattened(flattened *flattenedPost) (*model.Post, error) {
	post := &model.Post{
		Id: flattened.Id,
		Creator: &model.DisplayableUser{
			Id:          flattened.CreatorId,
			DisplayName: flattened.CreatorDisplayName,
			Avatar:      flattened.CreatorAvatar,
		},
		Category:     flattened.Category,
		Kind:         flattened.Kind,
		Text:         flattened.Text,
		LikeCount:    flattened.LikeCount,
		CommentCount: flattened.CommentCount,
		IsLiked:      flattened.LikedBy.Valid,
		Trending:     flattened.Trending,
		CreatedAt:    flattened.CreatedAt,
	}
	for _, field := range []struct {
		raw  sql.NullString
		dest interface{}
	}{
		{flattened.MediaJSON, &post.Media},
		{flattened.EventJSON, &post.Event},
		{flattened.OccasionJSON, &post.Occasion},
		{flattened.JobJSON, &post.Job},
		{flattened.DocumentJSON, &post.Document},
	} {
		if !field.raw.Valid {
			continue
		}
		if err := json.Unmarshal([]byte(field.raw.String), field.dest); err != nil {
			return nil, err
		}
	}
	return post, nil
}

type flattenedComment struct {
	Id                 int64     `db:"id"`
	CreatorId          string    `db:"creator_id"`
	CreatorDisplayName string    `db:"display_name"`
	CreatorAvatar      string    `db:"avatar"`
	Text               string    `db:"text"`
	CreatedAt          time.Time `db:"created_at"`
}

type flattenedReply struct {
	flattenedComment `db:",inline"`
	CommentId        int64 `db:"comment_id"`
}

func (pdb *PostDB) getComments(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := pdb.sess.SQL().
		Select("c.id", "c.creator_id", "person.display_name", "person.avatar", "c.text", "c.created_at").
		From("comment as c").
		Join("person").On("c.creator_id = person.firebase_id").
		Where("c.post_id = ?", postId).
		OrderBy("c.created_at ASC", "c.id ASC").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}

	var flattenedReplies []flattenedReply
	if err := pdb.sess.SQL().
		Select("r.id", "r.comment_id", "r.creator_id", "person.display_name", "person.avatar", "r.text", "r.created_at").
		From("reply as r").
		Join("person").On("r.creator_id = person.firebase_id").
		Where("r.post_id = ?", postId).
		OrderBy("r.created_at ASC", "r.id ASC").
		IteratorContext(ctx).
		All(&flattenedReplies); err != nil {
		return nil, err
	}

	repliesByComment := make(map[int64][]*model.Reply)
	for _, flattened := range flattenedReplies {
		repliesByComment[flattened.CommentId] = append(repliesByComment[flattened.CommentId], &model.Reply{
			Id:        flattened.Id,
			Creator:   creatorFromFlattened(&flattened.flattenedComment),
			Text:      flattened.Text,
			CreatedAt: flattened.CreatedAt,
		})
	}

	comments := make([]*model.Comment, len(flattenedComments))
	for i, flattened := range flattenedComments {
		replies := repliesByComment[flattened.Id]
		if replies == nil {
			replies = []*model.Reply{}
		}
		comments[i] = &model.Comment{
			Id:        flattened.Id,
			Creator:   creatorFromFlattened(&flattened),
			Text:      flattened.Text,
			Replies:   replies,
			CreatedAt: flattened.CreatedAt,
		}
	}
	return comments, nil
}

func creatorFromFlattened(flattened *flattenedComment) *model.DisplayableUser {
	return &model.DisplayableUser{
		Id:          flattened.CreatorId,
		DisplayName: flattened.CreatorDisplayName,
		Avatar:      flattened.CreatorAvatar,
	}
}
