// Package rewrite injects row-level security predicates into query text.
//
// The rewriter is a best-effort lexical transform, not a SQL parser: it scans
// for identifiers after FROM/JOIN and splices predicates into the text. It
// does not resolve aliases, subqueries, or CTEs; tables referenced only
// through those constructs are left untouched.
package rewrite

import (
	"context"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/samber/lo"

	"github.com/datawarden/datawarden/internal/audit"
	"github.com/datawarden/datawarden/internal/authz"
	"github.com/datawarden/datawarden/internal/contexts"
	"github.com/datawarden/datawarden/internal/pkg/xmap"
	"github.com/datawarden/datawarden/internal/pkg/xtime"
)

var (
	tableScanRegex = regexp2.MustCompile(
		`\b(?:FROM|JOIN)\s+((?:[A-Za-z_][A-Za-z0-9_]*\.)?[A-Za-z_][A-Za-z0-9_]*)`,
		regexp2.IgnoreCase)

	whereRegex = regexp2.MustCompile(`\bWHERE\b`, regexp2.IgnoreCase)

	// clauseCache holds compiled per-table FROM/JOIN clause patterns.
	clauseCache = xmap.New[string, *regexp2.Regexp]()
)

// Rewriter injects persona row filters into queries. Stateless beyond the
// immutable policy store; safe for concurrent use.
type Rewriter struct {
	store *authz.Store
	sink  audit.Sink
}

func NewRewriter(store *authz.Store, sink audit.Sink) *Rewriter {
	if sink == nil {
		sink = audit.NopSink{}
	}

	return &Rewriter{store: store, sink: sink}
}

// ReferencedTables returns the table names referenced after FROM/JOIN tokens,
// lowercased, qualifier prefixes stripped, duplicates removed, in discovery
// order.
func ReferencedTables(query string) []string {
	var tables []string

	match, err := tableScanRegex.FindStringMatch(query)
	for err == nil && match != nil {
		name := match.GroupByNumber(1).String()
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}

		tables = append(tables, strings.ToLower(name))

		match, err = tableScanRegex.FindNextMatch(match)
	}

	return lo.Uniq(tables)
}

// Rewrite returns the query with the caller's row filters injected. The input
// is returned unchanged, byte for byte, when the persona has no applicable
// rule. An audit event is emitted if and only if the output differs from the
// input.
func (r *Rewriter) Rewrite(ctx context.Context, query string) string {
	user, ok := contexts.GetUser(ctx)
	if !ok || user.Persona == "" {
		return query
	}

	persona, err := authz.ParsePersona(user.Persona)
	if err != nil || !r.store.HasRowFilters(persona) {
		return query
	}

	rewritten := query

	var applied []string

	for _, table := range ReferencedTables(query) {
		template, ok := r.store.RowFilter(persona, table)
		if !ok {
			continue
		}

		predicate := strings.ReplaceAll(template, authz.UserIDPlaceholder, quoteLiteral(user.UserID))

		next := injectPredicate(rewritten, table, predicate)
		if next != rewritten {
			rewritten = next
			applied = append(applied, table)
		}
	}

	if rewritten != query {
		r.sink.Record(ctx, audit.Event{
			Timestamp:    xtime.UTCNow(),
			UserID:       user.UserID,
			ResourceType: string(authz.KindTable),
			ResourceName: strings.Join(applied, ","),
			Action:       string(authz.ActionRead),
			Decision:     audit.DecisionRewrite,
			Reason:       "row filter injected",
			Persona:      user.Persona,
			Groups:       user.Groups,
			SessionID:    user.SessionID,
			Metadata: map[string]any{
				"tables": applied,
			},
		})
	}

	return rewritten
}

// injectPredicate splices the predicate into the query once: AND-ed after the
// first WHERE if one exists, otherwise as a new WHERE after the first
// FROM/JOIN clause naming the table.
func injectPredicate(query, table, predicate string) string {
	if match, err := whereRegex.FindStringMatch(query); err == nil && match != nil {
		at := match.Index + match.Length
		return query[:at] + " (" + predicate + ") AND" + query[at:]
	}

	clause := clausePattern(table)
	if match, err := clause.FindStringMatch(query); err == nil && match != nil {
		at := match.Index + match.Length
		return query[:at] + " WHERE (" + predicate + ")" + query[at:]
	}

	return query
}

func clausePattern(table string) *regexp2.Regexp {
	if cached, ok := clauseCache.Load(table); ok {
		return cached
	}

	pattern := regexp2.MustCompile(
		`\b(?:FROM|JOIN)\s+(?:[A-Za-z_][A-Za-z0-9_]*\.)?`+regexp.QuoteMeta(table)+`\b`,
		regexp2.IgnoreCase)

	compiled, _ := clauseCache.LoadOrStore(table, pattern)

	return compiled
}

// quoteLiteral doubles single quotes so a user id cannot terminate the
// surrounding string literal.
func quoteLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
