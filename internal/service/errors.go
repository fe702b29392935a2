package service

import (
	"errors"
	"fmt"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid    = errors.New("invalid request parameter")
	ErrInvalidArgument = errors.New("invalid command argument")
	ErrSendFailure     = errors.New("failed to deliver message")
	ErrTeamNotFound    = errors.New("team has no recorded activity")
	UnExpectedError    = errors.New("unexpected internal error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    BadRequest,
	ErrInvalidArgument: BadRequest,
	ErrTeamNotFound:    NotFound,
	ErrSendFailure:     InternalServerError,
	UnExpectedError:    InternalServerError,
}

// UsageError 携带具体子命令用法提示的参数错误
// 传输层负责把 Hint 原样回贴给用户
type UsageError struct {
	Subcommand string
	Hint       string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("invalid argument for %q subcommand", e.Subcommand)
}

func (e *UsageError) Unwrap() error {
	return ErrInvalidArgument
}
