package mysql

import (
	"context"
	"database/sql"
	"time"

	db2 "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
	"github.com/go-sql-driver/mysql"
	"github.com/upper/db/v4"
)

type EngagementDB struct {
	sess db.Session
}

func getEngagementDB(sess db.Session) *EngagementDB {
	return &EngagementDB{sess}
}

// ToggleLike serializes concurrent toggles on the same post behind the post
// row lock; post_like has a unique key on (post_id, user_id) as a backstop.
func (edb *EngagementDB) ToggleLike(ctx context.Context, postId int64, userId string) (*model.LikeStatus, error) {
	var status model.LikeStatus
	err := edb.sess.TxContext(ctx, func(sess db.Session) error {
		row, err := sess.SQL().QueryRowContext(ctx, `SELECT like_count FROM post
															WHERE id = ?
														FOR UPDATE`, postId)
		if err != nil {
			return err
		}
		var likeCount int
		if err := row.Scan(&likeCount); err != nil {
			if err == sql.ErrNoRows {
				return db2.ErrNotFound
			}
			return err
		}

		exists, err := sess.WithContext(ctx).
			Collection("post_like").
			Find("post_id = ? AND user_id = ?", postId, userId).
			Exists()
		if err != nil {
			return err
		}

		if exists {
			if _, err := sess.SQL().
				DeleteFrom("post_like").
				Where("post_id = ? AND user_id = ?", postId, userId).
				ExecContext(ctx); err != nil {
				return err
			}
			likeCount--
		} else {
			if _, err := sess.SQL().
				InsertInto("post_like").
				Columns("post_id", "user_id").
				Values(postId, userId).
				ExecContext(ctx); err != nil {
				return err
			}
			likeCount++
		}

		if _, err := sess.SQL().
			Update("post").
			Set("like_count = ?", likeCount).
			Where("id = ?", postId).
			ExecContext(ctx); err != nil {
			return err
		}
		status = model.LikeStatus{IsLiked: !exists, LikesCount: likeCount}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (edb *EngagementDB) AppendComment(ctx context.Context, req *db2.CreateComment) (*model.Comment, error) {
	var comment *model.Comment
	err := edb.sess.TxContext(ctx, func(sess db.Session) error {
		exists, err := sess.WithContext(ctx).Collection("post").Find("id = ?", req.PostId).Exists()
		if err != nil {
			return err
		}
		if !exists {
			return db2.ErrNotFound
		}

		res, err := sess.SQL().
			InsertInto("comment").
			Columns("post_id", "creator_id", "text").
			Values(req.PostId, req.CreatorId, req.Text).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		commentId, err := res.LastInsertId()
		if err != nil {
			return err
		}

		if _, err := sess.SQL().ExecContext(ctx, db.Raw(`
UPDATE post SET comment_count = comment_count + 1 WHERE id = ?
`, req.PostId)); err != nil {
			return err
		}

		comment = &model.Comment{
			Id:        commentId,
			Text:      req.Text,
			Replies:   []*model.Reply{},
			CreatedAt: time.Now(),
		}
		return nil
	}, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	comment.Creator, err = edb.displayableCreator(ctx, req.CreatorId)
	return comment, err
}

func (edb *EngagementDB) AppendReply(ctx context.Context, req *db2.CreateReply) (*model.Reply, error) {
	var reply *model.Reply
	err := edb.sess.TxContext(ctx, func(sess db.Session) error {
		// the comment must belong to the post; a reply id is never a match
		// since replies live in their own table
		exists, err := sess.WithContext(ctx).
			Collection("comment").
			Find("id = ? AND post_id = ?", req.CommentId, req.PostId).
			Exists()
		if err != nil {
			return err
		}
		if !exists {
			return db2.ErrNotFound
		}

		res, err := sess.SQL().
			InsertInto("reply").
			Columns("comment_id", "post_id", "creator_id", "text").
			Values(req.CommentId, req.PostId, req.CreatorId, req.Text).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		replyId, err := res.LastInsertId()
		if err != nil {
			return err
		}

		reply = &model.Reply{
			Id:        replyId,
			Text:      req.Text,
			CreatedAt: time.Now(),
		}
		return nil
	}, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	reply.Creator, err = edb.displayableCreator(ctx, req.CreatorId)
	return reply, err
}

// CastVote locks the poll row, gates on expiry, then relies on the unique key
// on poll_vote (post_id, voter_id) so a duplicate submission can never double
// count.
func (edb *EngagementDB) CastVote(ctx context.Context, postId int64, userId string, option string, now time.Time) (map[string]int, error) {
	err := edb.sess.TxContext(ctx, func(sess db.Session) error {
		row, err := sess.SQL().QueryRowContext(ctx, `SELECT end_date FROM poll
															WHERE post_id = ?
														FOR UPDATE`, postId)
		if err != nil {
			return err
		}
		var endDate time.Time
		if err := row.Scan(&endDate); err != nil {
			if err == sql.ErrNoRows {
				return edb.missingPollErr(ctx, sess, postId)
			}
			return err
		}
		if now.After(endDate) {
			return db2.ErrPollExpired
		}

		optionRow, err := sess.SQL().QueryRowContext(ctx,
			`SELECT idx FROM poll_option WHERE post_id = ? AND label = ?`, postId, option)
		if err != nil {
			return err
		}
		var optionIdx int
		if err := optionRow.Scan(&optionIdx); err != nil {
			if err == sql.ErrNoRows {
				return db2.ErrInvalidOption
			}
			return err
		}

		if _, err := sess.SQL().
			InsertInto("poll_vote").
			Columns("post_id", "voter_id", "option_idx").
			Values(postId, userId, optionIdx).
			ExecContext(ctx); err != nil {
			if mysqlErr, ok := err.(*mysql.MySQLError); ok && db2.IsDupKeyErr(mysqlErr) {
				return db2.ErrAlreadyVoted
			}
			return err
		}

		_, err = sess.SQL().ExecContext(ctx, db.Raw(`
UPDATE poll_option SET vote_count = vote_count + 1 WHERE post_id = ? AND idx = ?
`, postId, optionIdx))
		return err
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}

	poll, err := getPoll(ctx, edb.sess, postId, userId)
	if err != nil {
		return nil, err
	}
	return poll.Votes, nil
}

func (edb *EngagementDB) GetPoll(ctx context.Context, postId int64, opts *db2.PostQueryOpts) (*model.Poll, error) {
	poll, err := getPoll(ctx, edb.sess, postId, opts.LikeHistoryOf)
	if err == db2.ErrNoPoll {
		// getPoll only reads the poll table, so it cannot tell a missing post
		// from a post without a poll
		return nil, edb.missingPollErr(ctx, edb.sess, postId)
	}
	return poll, err
}

func (edb *EngagementDB) missingPollErr(ctx context.Context, sess db.Session, postId int64) error {
	exists, err := sess.WithContext(ctx).Collection("post").Find("id = ?", postId).Exists()
	if err != nil {
		return err
	}
	if !exists {
		return db2.ErrNotFound
	}
	return db2.ErrNoPoll
}

type flattenedPollOption struct {
	Label     string `db:"label"`
	VoteCount int    `db:"vote_count"`
}

func getPoll(ctx context.Context, sess db.Session, postId int64, viewerId string) (*model.Poll, error) {
	var pollRow struct {
		Question string    `db:"question"`
		EndDate  time.Time `db:"end_date"`
	}
	if err := sess.SQL().
		Select("question", "end_date").
		From("poll").
		Where("post_id = ?", postId).
		IteratorContext(ctx).
		One(&pollRow); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, db2.ErrNoPoll
		}
		return nil, err
	}

	var options []flattenedPollOption
	if err := sess.SQL().
		Select("label", "vote_count").
		From("poll_option").
		Where("post_id = ?", postId).
		OrderBy("idx ASC").
		IteratorContext(ctx).
		All(&options); err != nil {
		return nil, err
	}

	poll := &model.Poll{
		Question: pollRow.Question,
		Options:  make([]string, len(options)),
		Votes:    make(map[string]int, len(options)),
		EndDate:  pollRow.EndDate,
	}
	for i, option := range options {
		poll.Options[i] = option.Label
		poll.Votes[option.Label] = option.VoteCount
		poll.TotalVotes += option.VoteCount
	}

	if viewerId != "" {
		hasVoted, err := sess.WithContext(ctx).
			Collection("poll_vote").
			Find("post_id = ? AND voter_id = ?", postId, viewerId).
			Exists()
		if err != nil {
			return nil, err
		}
		poll.HasVoted = hasVoted
	}
	return poll, nil
}

func (edb *EngagementDB) displayableCreator(ctx context.Context, creatorId string) (*model.DisplayableUser, error) {
	var user model.User
	if err := edb.sess.SQL().
		Select("*").
		From("person").
		Where("firebase_id = ?", creatorId).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return &model.DisplayableUser{Id: creatorId}, nil
		}
		return nil, err
	}
	return user.Displayable(), nil
}
