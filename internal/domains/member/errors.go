package member

import "errors"

var ErrUserNotFound = errors.New("user does not exist")
