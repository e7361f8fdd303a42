package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Remove func(RemoveArgs) (Result, error)
	Cart   func(CartArgs) (Result, error)
	Uncart func(CartArgs) (Result, error)
	Clear  func() (Result, error)
	Reset  func(ResetArgs) (Result, error)
	Show   func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Remove(*cmd.Remove)
	case TypeCart:
		if handlers.Cart == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Cart(*cmd.Cart)
	case TypeUncart:
		if handlers.Uncart == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Uncart(*cmd.Cart)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reset(*cmd.Reset)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
