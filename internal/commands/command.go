package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/todocal/internal/model"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeDate    Type = "date"
	TypeRefresh Type = "refresh"
	TypeLogin   Type = "login"
	TypeLogout  Type = "logout"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

// DateArgs selects a calendar date. Today is set for the "today" keyword;
// otherwise Date holds a YYYY-MM-DD value.
type DateArgs struct {
	Date  string
	Today bool
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Date *DateArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDate:
		return parseDate(input, args)
	case TypeRefresh, TypeLogin, TypeLogout:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseDate(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "date requires YYYY-MM-DD or today"}
	}
	if strings.EqualFold(args[0], "today") {
		return Command{Type: TypeDate, Raw: raw, Date: &DateArgs{Today: true}}, nil
	}
	tm, err := model.ParseDate(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeDate, Raw: raw, Date: &DateArgs{Date: model.FormatDate(tm)}}, nil
}
