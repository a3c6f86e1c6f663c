// Package validate checks generated dashboards and rules for PromQL syntax
// errors and references to metrics the service does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/network-link-manager/tools/dashgen/rules"
)

// histogramSuffixes are stripped before a selector is looked up so that
// foo_bucket, foo_sum and foo_count resolve to foo.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects problems found during validation. Errors make the
// artifact unusable; Warnings flag panels that render but are incomplete.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation produced no errors.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Expr parses a PromQL expression and reports every metric selector whose
// name is not in known.
func Expr(expr string, known map[string]bool) error {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", expr, err)
	}

	var unknown []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !known[baseName(vs.Name)] {
			unknown = append(unknown, vs.Name)
		}
		return nil
	})

	if len(unknown) > 0 {
		return fmt.Errorf("unknown metrics in %q: %s", expr, strings.Join(unknown, ", "))
	}
	return nil
}

func baseName(name string) string {
	for _, s := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, s); ok {
			return base
		}
	}
	return name
}

// panelJSON is the subset of a serialized panel the validator inspects.
type panelJSON struct {
	Title   string      `json:"title"`
	Type    string      `json:"type"`
	Panels  []panelJSON `json:"panels"`
	Targets []struct {
		Expr string `json:"expr"`
	} `json:"targets"`
}

// Dashboard validates every panel query in dash. The dashboard is walked in
// its serialized form so that collapsed rows and nested panels are covered.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) *Result {
	res := &Result{}

	raw, err := json.Marshal(dash)
	if err != nil {
		res.errorf("marshaling dashboard: %v", err)
		return res
	}

	var doc struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	for i := range doc.Panels {
		walkPanel(&doc.Panels[i], known, res)
	}
	return res
}

func walkPanel(p *panelJSON, known map[string]bool, res *Result) {
	if p.Type == "row" {
		if len(p.Panels) == 0 {
			res.warnf("row %q has no panels", p.Title)
		}
		for i := range p.Panels {
			walkPanel(&p.Panels[i], known, res)
		}
		return
	}

	if len(p.Targets) == 0 {
		res.warnf("panel %q has no queries", p.Title)
	}
	for _, t := range p.Targets {
		if t.Expr == "" {
			res.warnf("panel %q has an empty query", p.Title)
			continue
		}
		if err := Expr(t.Expr, known); err != nil {
			res.errorf("panel %q: %v", p.Title, err)
		}
	}
}

// Rules validates every expression in a PrometheusRule. Recording rule
// names are added to the known set so that later rules may reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) *Result {
	res := &Result{}

	names := make(map[string]bool, len(known))
	for k, v := range known {
		names[k] = v
	}

	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			id := r.Alert
			if r.Record != "" {
				id = r.Record
				names[r.Record] = true
			}
			if err := Expr(r.Expr, names); err != nil {
				res.errorf("%s/%s: %v", g.Name, id, err)
			}
			if r.Alert != "" && r.Labels["severity"] == "" {
				res.warnf("%s/%s: alert has no severity label", g.Name, id)
			}
		}
	}
	return res
}
