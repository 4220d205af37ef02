package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Пороговые значения бюджетов
	BudgetInfo            Code = 1000
	BudgetMaximumExceeded Code = 1001
	BudgetMinimumNotMet   Code = 1002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	BudgetInfo:            "Budget information",
	BudgetMaximumExceeded: "Maximum budget exceeded",
	BudgetMinimumNotMet:   "Minimum budget not met",
}

// ID returns the stable identifier, e.g. "B1001".
func (c Code) ID() string {
	return fmt.Sprintf("B%04d", uint16(c))
}

func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}
