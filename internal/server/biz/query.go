package biz

import (
	"context"

	"go.uber.org/fx"

	"github.com/datawarden/datawarden/internal/authz"
	"github.com/datawarden/datawarden/internal/log"
	"github.com/datawarden/datawarden/internal/rewrite"
)

type QueryServiceParams struct {
	fx.In

	Gate     *authz.Gate
	Rewriter *rewrite.Rewriter
}

// QueryService authorizes every table a query references, then applies the
// persona's row filters to the query text.
type QueryService struct {
	gate     *authz.Gate
	rewriter *rewrite.Rewriter
}

func NewQueryService(params QueryServiceParams) *QueryService {
	return &QueryService{
		gate:     params.Gate,
		rewriter: params.Rewriter,
	}
}

// PreparedQuery is the authorized, possibly rewritten form of a query.
type PreparedQuery struct {
	Query     string
	Rewritten bool
	Tables    []string
}

// Prepare authorizes and rewrites query for the caller in ctx. Each referenced
// table produces one audited decision; a single denial fails the whole query.
func (svc *QueryService) Prepare(ctx context.Context, query string) (*PreparedQuery, error) {
	tables := rewrite.ReferencedTables(query)

	var denied []string

	reason := ""

	for _, table := range tables {
		decision := svc.gate.Decide(ctx, authz.Table(table), authz.ActionRead)
		if !decision.Allowed {
			denied = append(denied, table)
			reason = decision.Reason
		}
	}

	if len(denied) > 0 {
		return nil, &AccessDeniedError{
			Kind:      authz.KindTable,
			Resources: denied,
			Reason:    reason,
		}
	}

	rewritten := svc.rewriter.Rewrite(ctx, query)
	if rewritten != query && log.DebugEnabled(ctx) {
		log.Debug(ctx, "query rewritten",
			log.Strings("tables", tables),
			log.Int("original_len", len(query)),
			log.Int("rewritten_len", len(rewritten)),
		)
	}

	return &PreparedQuery{
		Query:     rewritten,
		Rewritten: rewritten != query,
		Tables:    tables,
	}, nil
}
