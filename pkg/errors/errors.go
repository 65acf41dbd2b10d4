package errors

import (
	"errors"
	"fmt"

	"spotex/pkg/errors/ecode"
)

// 带错误码的error，handler层通过DecodeErr还原成响应码和提示

type codeError struct {
	code    int
	message string
	cause   error
}

func (e *codeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *codeError) Unwrap() error {
	return e.cause
}

// New 等价于标准库errors.New
func New(message string) error {
	return errors.New(message)
}

// WithCode 创建一个带错误码的error
func WithCode(code int, format string, args ...interface{}) error {
	return &codeError{
		code:    code,
		message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装err并附带错误码和提示
func Wrap(err error, code int, message string) error {
	if err == nil {
		return nil
	}
	return &codeError{
		code:    code,
		message: message,
		cause:   err,
	}
}

// Wrapf 同Wrap，格式化提示
func Wrapf(err error, code int, format string, args ...interface{}) error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// DecodeErr 从err中解出错误码和提示信息
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Message(ecode.Success)
	}
	var ce *codeError
	if errors.As(err, &ce) {
		msg := ce.message
		if msg == "" {
			msg = ecode.Message(ce.code)
		}
		return ce.code, msg
	}
	return ecode.Unknown, err.Error()
}

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }
