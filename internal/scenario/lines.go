package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/talgya/settleplan/internal/facility"
	"github.com/talgya/settleplan/internal/selection"
	"github.com/talgya/settleplan/internal/social"
)

// Parse reads the line format. Errors carry the 1-based line number.
func Parse(r io.Reader) (*Scenario, error) {
	sc := &Scenario{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := sc.parseEntry(fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return sc, nil
}

// parseEntry parses a single settlement, facility or plan line into sc.
func (sc *Scenario) parseEntry(fields []string) error {
	switch fields[0] {
	case "settlement":
		if len(fields) != 3 {
			return fmt.Errorf("%w: settlement wants 2 arguments, got %d", ErrSyntax, len(fields)-1)
		}
		s, err := ParseSettlement(fields[1], fields[2])
		if err != nil {
			return err
		}
		sc.Settlements = append(sc.Settlements, s)
	case "facility":
		if len(fields) != 7 {
			return fmt.Errorf("%w: facility wants 6 arguments, got %d", ErrSyntax, len(fields)-1)
		}
		ft, err := ParseFacility(fields[1:])
		if err != nil {
			return err
		}
		sc.Facilities = append(sc.Facilities, ft)
	case "plan":
		if len(fields) != 3 {
			return fmt.Errorf("%w: plan wants 2 arguments, got %d", ErrSyntax, len(fields)-1)
		}
		code, err := selection.ParseCode(fields[2])
		if err != nil {
			return err
		}
		sc.Plans = append(sc.Plans, PlanEntry{Settlement: fields[1], Policy: code})
	default:
		return fmt.Errorf("%w %q", ErrUnknownEntry, fields[0])
	}
	return nil
}

// ParseSettlement builds a settlement from its name and class argument.
func ParseSettlement(name, class string) (social.Settlement, error) {
	c, err := social.ParseClass(class)
	if err != nil {
		return social.Settlement{}, err
	}
	return social.New(name, c)
}

// ParseFacility builds a facility type from
// name, category, cost, life quality, economy and environment arguments.
func ParseFacility(args []string) (facility.Type, error) {
	if len(args) != 6 {
		return facility.Type{}, fmt.Errorf("%w: facility wants 6 arguments, got %d", ErrSyntax, len(args))
	}
	cat, err := facility.ParseCategory(args[1])
	if err != nil {
		return facility.Type{}, err
	}
	nums := make([]int, 4)
	for i, field := range args[2:] {
		n, err := strconv.Atoi(field)
		if err != nil {
			return facility.Type{}, fmt.Errorf("%w: %q is not an integer", ErrSyntax, field)
		}
		nums[i] = n
	}
	return facility.NewType(args[0], cat, nums[0], nums[1], nums[2], nums[3])
}
