package util

import (
	"strconv"
)

func parseInt64(val string) (int64, error) {
	return strconv.ParseInt(val, 10, 64)
}
