package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyVoted  = errors.New("user has already voted on this poll")
	ErrPollExpired   = errors.New("poll has ended")
	ErrInvalidOption = errors.New("option is not part of the poll")
	ErrNoPoll        = errors.New("post does not have a poll")
)

func IsDupKeyErr(error *mysql.MySQLError) bool {
	return strings.Contains(error.Error(), "Duplicate")
}
