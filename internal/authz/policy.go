package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

// UserIDPlaceholder is substituted with the caller's user id when a row
// filter template is materialized.
const UserIDPlaceholder = "{user_id}"

// PersonaConfig declares what a persona may touch.
type PersonaConfig struct {
	// Tables the persona may query.
	Tables []string `conf:"tables" yaml:"tables" json:"tables"`

	// Tools the persona may execute.
	Tools []string `conf:"tools" yaml:"tools" json:"tools"`

	// RowFilters maps a table name to a predicate template containing the
	// {user_id} placeholder.
	RowFilters map[string]string `conf:"row_filters" yaml:"row_filters" json:"row_filters"`
}

// Config is the static policy configuration loaded once at process start.
type Config struct {
	Personas map[string]PersonaConfig `conf:"personas" yaml:"personas" json:"personas"`
}

// DefaultConfig returns the built-in warehouse analytics policy. It is used
// when the configuration file declares no personas.
func DefaultConfig() Config {
	return Config{
		Personas: map[string]PersonaConfig{
			"executive": {
				Tables: []string{"warehouse_product", "inventory_snapshot", "sales_order", "finance_ledger"},
				Tools:  []string{"inventory_report", "sales_report", "echo"},
			},
			"warehouse_manager": {
				Tables: []string{"warehouse_product", "inventory_snapshot"},
				Tools:  []string{"inventory_report", "echo"},
				RowFilters: map[string]string{
					"warehouse_product":  "warehouse_code IN (SELECT warehouse_code FROM warehouse_assignment WHERE manager_id = '{user_id}')",
					"inventory_snapshot": "warehouse_code IN (SELECT warehouse_code FROM warehouse_assignment WHERE manager_id = '{user_id}')",
				},
			},
			"sales_analyst": {
				Tables: []string{"sales_order", "warehouse_product"},
				Tools:  []string{"sales_report", "echo"},
				RowFilters: map[string]string{
					"sales_order": "account_id IN (SELECT account_id FROM account_assignment WHERE analyst_id = '{user_id}')",
				},
			},
			"finance_auditor": {
				Tables: []string{"finance_ledger"},
				Tools:  []string{},
			},
		},
	}
}

type personaPolicy struct {
	tables     map[string]struct{}
	tools      map[string]struct{}
	rowFilters map[string]string
}

// Store is the immutable persona policy lookup. It is built once at process
// start and safe for concurrent reads without locking.
type Store struct {
	policies map[Persona]personaPolicy
}

// NewStore validates the config and builds the policy store. All validation
// failures are reported together.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Personas) == 0 {
		cfg = DefaultConfig()
	}

	var errs error

	policies := make(map[Persona]personaPolicy, len(cfg.Personas))

	for name, pc := range cfg.Personas {
		persona, err := ParsePersona(name)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("unknown persona %q in policy config", name))
			continue
		}

		policy := personaPolicy{
			tables:     lo.SliceToMap(pc.Tables, func(t string) (string, struct{}) { return t, struct{}{} }),
			tools:      lo.SliceToMap(pc.Tools, func(t string) (string, struct{}) { return t, struct{}{} }),
			rowFilters: make(map[string]string, len(pc.RowFilters)),
		}

		for table, template := range pc.RowFilters {
			if _, ok := policy.tables[table]; !ok {
				errs = multierror.Append(errs,
					fmt.Errorf("persona %q has a row filter for table %q it cannot access", name, table))
				continue
			}

			if !strings.Contains(template, UserIDPlaceholder) {
				errs = multierror.Append(errs,
					fmt.Errorf("row filter for persona %q table %q is missing the %s placeholder", name, table, UserIDPlaceholder))
				continue
			}

			policy.rowFilters[table] = template
		}

		policies[persona] = policy
	}

	if errs != nil {
		return nil, errs
	}

	return &Store{policies: policies}, nil
}

// Allows reports whether the persona may touch the named resource of the kind.
func (s *Store) Allows(p Persona, kind ResourceKind, name string) bool {
	policy, ok := s.policies[p]
	if !ok {
		return false
	}

	switch kind {
	case KindTable:
		_, ok = policy.tables[name]
	case KindTool:
		_, ok = policy.tools[name]
	default:
		return false
	}

	return ok
}

// AllowedNames returns the sorted resource names the persona may touch.
func (s *Store) AllowedNames(p Persona, kind ResourceKind) []string {
	policy, ok := s.policies[p]
	if !ok {
		return nil
	}

	var names []string

	switch kind {
	case KindTable:
		names = lo.Keys(policy.tables)
	case KindTool:
		names = lo.Keys(policy.tools)
	}

	sort.Strings(names)

	return names
}

// RowFilter returns the persona's filter template for the table, if any.
func (s *Store) RowFilter(p Persona, table string) (string, bool) {
	policy, ok := s.policies[p]
	if !ok {
		return "", false
	}

	template, ok := policy.rowFilters[table]

	return template, ok
}

// HasRowFilters reports whether the persona has any row filter rules.
func (s *Store) HasRowFilters(p Persona) bool {
	policy, ok := s.policies[p]
	return ok && len(policy.rowFilters) > 0
}
