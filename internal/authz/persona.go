package authz

import "fmt"

// Persona defines the closed set of caller roles. Raw strings are parsed at
// the boundary; the rest of the system only ever sees a Persona value.
type Persona int

const (
	// PersonaUnknown means the raw value did not parse.
	PersonaUnknown Persona = iota
	// PersonaExecutive has read access across all analytics tables.
	PersonaExecutive
	// PersonaWarehouseManager sees inventory data scoped to their warehouses.
	PersonaWarehouseManager
	// PersonaSalesAnalyst sees sales data scoped to their accounts.
	PersonaSalesAnalyst
	// PersonaFinanceAuditor has read access to financial tables only.
	PersonaFinanceAuditor
)

// String returns string representation of Persona.
func (p Persona) String() string {
	switch p {
	case PersonaExecutive:
		return "executive"
	case PersonaWarehouseManager:
		return "warehouse_manager"
	case PersonaSalesAnalyst:
		return "sales_analyst"
	case PersonaFinanceAuditor:
		return "finance_auditor"
	default:
		return "unknown"
	}
}

// ParsePersona parses a raw persona value into the closed enumeration.
// An unparseable value is an explicit error, never a default persona.
func ParsePersona(raw string) (Persona, error) {
	switch raw {
	case "executive":
		return PersonaExecutive, nil
	case "warehouse_manager":
		return PersonaWarehouseManager, nil
	case "sales_analyst":
		return PersonaSalesAnalyst, nil
	case "finance_auditor":
		return PersonaFinanceAuditor, nil
	default:
		return PersonaUnknown, fmt.Errorf("authz: invalid persona %q", raw)
	}
}

// Personas lists every valid persona.
func Personas() []Persona {
	return []Persona{
		PersonaExecutive,
		PersonaWarehouseManager,
		PersonaSalesAnalyst,
		PersonaFinanceAuditor,
	}
}
