package session

import "errors"

const ErrMsgSessionNotFound = "session not found"

var ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)
