package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeRemove Type = "remove"
	TypeCart   Type = "cart"
	TypeUncart Type = "uncart"
	TypeClear  Type = "clear"
	TypeReset  Type = "reset"
	TypeShow   Type = "show"
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
	Name     string
	Quantity int
}

// RemoveArgs.Number is the 1-based position shown to the user.
type RemoveArgs struct {
	Number int
}

type CartArgs struct {
	Name string
}

type ResetArgs struct {
	Password string
}

type ShowArgs struct {
	Subject string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Remove *RemoveArgs
	Cart   *CartArgs
	Reset  *ResetArgs
	Show   *ShowArgs
}

var aliases = map[string]Type{
	"rm":      TypeRemove,
	"del":     TypeRemove,
	"check":   TypeCart,
	"uncheck": TypeUncart,
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
	if alias, ok := aliases[head]; ok {
		head = string(alias)
	}

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeRemove:
		return parseRemove(input, args)
	case TypeCart, TypeUncart:
		return parseCart(input, Type(head), raw)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeReset:
		return parseReset(input, raw)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// ParseItemSpec splits "name words [qty]" into a name and a quantity. A
// trailing positive integer, optionally written xN, is the quantity;
// otherwise the quantity is 1.
func ParseItemSpec(spec string) (string, int, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return "", 0, &CommandError{Code: ErrCodeInvalidArgument, Message: "item name is required"}
	}
	qty := 1
	if len(fields) > 1 {
		last := strings.TrimPrefix(strings.ToLower(fields[len(fields)-1]), "x")
		if n, err := strconv.Atoi(last); err == nil {
			if n < 1 {
				return "", 0, &CommandError{Code: ErrCodeInvalidArgument, Message: "quantity must be at least 1"}
			}
			qty = n
			fields = fields[:len(fields)-1]
		}
	}
	return strings.Join(fields, " "), qty, nil
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires an item name"}
	}
	name, qty, err := ParseItemSpec(strings.Join(args, " "))
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Name: name, Quantity: qty}}, nil
}

func parseRemove(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remove requires an item number"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid item number: %s", args[0])}
	}
	return Command{Type: TypeRemove, Raw: raw, Remove: &RemoveArgs{Number: n}}, nil
}

// parseCart keeps the name's inner spacing; cart entries match exactly.
func parseCart(raw string, typ Type, body string) (Command, error) {
	name := strings.TrimSpace(body[len(strings.Fields(body)[0]):])
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires an item name", typ)}
	}
	return Command{Type: typ, Raw: raw, Cart: &CartArgs{Name: name}}, nil
}

func parseReset(raw string, body string) (Command, error) {
	password := strings.TrimSpace(body[len(strings.Fields(body)[0]):])
	if password == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "reset requires the password"}
	}
	return Command{Type: TypeReset, Raw: raw, Reset: &ResetArgs{Password: password}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires list or shopping"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "list", "shopping":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view: %s", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}
