// Package parser extracts the structure of a SQL-flavoured query text into a
// cost descriptor. It is a collaborator of the cost model, kept behind this
// boundary so the model's arithmetic stays testable without any text parsing.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/cost"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/domain/schema"
)

var (
	fromRe   = regexp.MustCompile(`(?i)FROM\s+(\w+)`)
	joinRe   = regexp.MustCompile(`(?i)JOIN\s+(\w+)`)
	whereRe  = regexp.MustCompile(`(?i)WHERE\s+([\w\.]+)\s*(=|>|<|!=)`)
	groupRe  = regexp.MustCompile(`(?i)GROUP\s+BY\s+([\w\.]+)`)
	aggRe    = regexp.MustCompile(`(?i)(SUM|AVG|COUNT|MAX|MIN)\(([\w\.\*]+)\)`)
	limitRe  = regexp.MustCompile(`(?i)LIMIT\s+(\d+)`)
	onRe     = regexp.MustCompile(`(?i)ON\s+([\w\.]+)\s*=\s*[\w\.]+`)
	selectRe = regexp.MustCompile(`(?is)SELECT\s+(.*?)\s+FROM`)
)

// Parse turns a query text into the matching cost descriptor shape. The shape
// is decided here, once: group-by present means aggregate (with a post-join
// when a second collection appears), a join clause means join, anything else
// is a plain filter.
func Parse(query string) (cost.Query, error) {
	entry, target, err := collections(query)
	if err != nil {
		return nil, err
	}

	filterKey := lastSegment(firstGroup(whereRe, query))
	groupKey := lastSegment(firstGroup(groupRe, query))
	joinKey := lastSegment(firstGroup(onRe, query))
	selected := selectFields(query)

	var limit int64
	if raw := firstGroup(limitRe, query); raw != "" {
		limit, _ = strconv.ParseInt(raw, 10, 64)
	}

	if groupKey != "" {
		agg := cost.Aggregate{
			Entry:     entry,
			GroupKey:  groupKey,
			FilterKey: filterKey,
			Limit:     limit,
		}
		if match := aggRe.FindStringSubmatch(query); match != nil {
			agg.AggOp = strings.ToUpper(match[1])
			agg.AggField = lastSegment(match[2])
		}
		if target == "" {
			return &agg, nil
		}
		if joinKey == "" {
			joinKey = groupKey
		}
		return &cost.AggregateJoin{
			Aggregate: agg,
			Target:    target,
			JoinKey:   joinKey,
			Select:    selected,
		}, nil
	}

	if target == "" {
		return &cost.Filter{
			Entry:     entry,
			FilterKey: filterKey,
			Select:    selected,
			Limit:     limit,
		}, nil
	}

	return &cost.Join{
		Entry:     entry,
		Target:    target,
		FilterKey: filterKey,
		JoinKey:   joinKey,
		Select:    selected,
	}, nil
}

// collections extracts the entry and target entities. With several FROM
// clauses the query carries a subquery: its FROM (the last one) is the entry
// and the outer FROM the join target. Otherwise the single FROM is the entry
// and an explicit JOIN names the target.
func collections(query string) (entry, target schema.Entity, err error) {
	froms := fromRe.FindAllStringSubmatch(query, -1)
	if len(froms) == 0 {
		return "", "", fmt.Errorf("query has no FROM clause: %q", query)
	}

	if len(froms) > 1 {
		entry = Normalize(froms[len(froms)-1][1])
		target = Normalize(froms[0][1])
	} else {
		entry = Normalize(froms[0][1])
		if join := firstGroup(joinRe, query); join != "" {
			target = Normalize(join)
		}
	}

	if !entry.Known() {
		return "", "", fmt.Errorf("unrecognized entry collection in query: %q", query)
	}
	return entry, target, nil
}

// Normalize maps a collection name from the query text to its entity. The
// short entity codes (Prod, St, OL, Cl, Wa, Cat, Supp) are accepted as-is.
func Normalize(name string) schema.Entity {
	switch schema.Entity(name) {
	case schema.EntityProduct, schema.EntityStock, schema.EntityOrderLine,
		schema.EntityClient, schema.EntityWarehouse, schema.EntityCategory,
		schema.EntitySupplier:
		return schema.Entity(name)
	}
	switch lower := strings.ToLower(name); {
	case strings.Contains(lower, "product"):
		return schema.EntityProduct
	case strings.Contains(lower, "stock"):
		return schema.EntityStock
	case strings.Contains(lower, "orderline"):
		return schema.EntityOrderLine
	case strings.Contains(lower, "client"):
		return schema.EntityClient
	case strings.Contains(lower, "warehouse"):
		return schema.EntityWarehouse
	case strings.Contains(lower, "categor"):
		return schema.EntityCategory
	case strings.Contains(lower, "supplier"):
		return schema.EntitySupplier
	}
	return schema.EntityUnknown
}

// selectFields lists the plain field names of the outermost SELECT clause.
// Aggregate expressions and * are skipped; alias prefixes are stripped.
func selectFields(query string) []string {
	raw := firstGroup(selectRe, query)
	if raw == "" {
		return nil
	}
	var fields []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "*" || strings.Contains(part, "(") {
			continue
		}
		// drop a trailing "AS alias"
		if idx := strings.Index(strings.ToUpper(part), " AS "); idx >= 0 {
			part = part[:idx]
		}
		fields = append(fields, lastSegment(part))
	}
	return fields
}

func firstGroup(re *regexp.Regexp, s string) string {
	if match := re.FindStringSubmatch(s); match != nil {
		return match[1]
	}
	return ""
}

// lastSegment strips a table alias prefix: "S.IDP" becomes "IDP"
func lastSegment(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.Split(key, ".")
	return parts[len(parts)-1]
}
