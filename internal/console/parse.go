package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/talgya/settleplan/internal/action"
	"github.com/talgya/settleplan/internal/scenario"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad arguments")
)

// Parse turns one console line into an action. Blank lines yield nil.
func Parse(line string) (action.Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "step":
		if len(args) != 1 {
			return nil, arity(cmd, 1, args)
		}
		n, err := atoi(args[0])
		if err != nil {
			return nil, err
		}
		return &action.SimulateStep{Steps: n}, nil
	case "plan":
		if len(args) != 2 {
			return nil, arity(cmd, 2, args)
		}
		return &action.AddPlan{Settlement: args[0], Policy: args[1]}, nil
	case "settlement":
		if len(args) != 2 {
			return nil, arity(cmd, 2, args)
		}
		s, err := scenario.ParseSettlement(args[0], args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		return &action.AddSettlement{Name: s.Name, Class: s.Class}, nil
	case "facility":
		if len(args) != 6 {
			return nil, arity(cmd, 6, args)
		}
		ft, err := scenario.ParseFacility(args)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		return &action.AddFacility{Type: ft}, nil
	case "planStatus":
		if len(args) != 1 {
			return nil, arity(cmd, 1, args)
		}
		id, err := atoi(args[0])
		if err != nil {
			return nil, err
		}
		return &action.PrintPlanStatus{PlanID: id}, nil
	case "changePolicy":
		if len(args) != 2 {
			return nil, arity(cmd, 2, args)
		}
		id, err := atoi(args[0])
		if err != nil {
			return nil, err
		}
		return &action.ChangePlanPolicy{PlanID: id, Policy: args[1]}, nil
	case "history":
		if len(args) < 1 || len(args) > 2 {
			return nil, arityRange(cmd, 1, 2, args)
		}
		id, err := atoi(args[0])
		if err != nil {
			return nil, err
		}
		h := &action.PlanHistory{PlanID: id}
		if len(args) == 2 {
			if h.Limit, err = atoi(args[1]); err != nil {
				return nil, err
			}
		}
		return h, nil
	case "log", "close", "backup", "restore":
		if len(args) != 0 {
			return nil, arity(cmd, 0, args)
		}
		return simple(cmd), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
	}
}

func simple(cmd string) action.Action {
	switch cmd {
	case "log":
		return &action.PrintActionsLog{}
	case "close":
		return &action.Close{}
	case "backup":
		return &action.BackupSimulation{}
	default:
		return &action.RestoreSimulation{}
	}
}

func arity(cmd string, want int, args []string) error {
	return fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrBadArguments, cmd, want, len(args))
}

func arityRange(cmd string, lo, hi int, args []string) error {
	return fmt.Errorf("%w: %s takes %d-%d arguments, got %d", ErrBadArguments, cmd, lo, hi, len(args))
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrBadArguments, s)
	}
	return n, nil
}
