package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/internal/config"
	"github.com/jonlawlor/relalg/source"
	"github.com/spf13/cobra"
)

// outputFlags choose how a result is written.
type outputFlags struct {
	format string
	out    string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "table", "Output format (table, json, go, arrow)")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Write the result to this file instead of stdout")
}

// write renders a materialized result in the chosen format.
func (o *outputFlags) write(cmd *cobra.Command, r rel.Relation) (err error) {
	w := cmd.OutOrStdout()
	if o.out != "" {
		var f *os.File
		if f, err = os.Create(o.out); err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	switch o.format {
	case "table":
		_, err = fmt.Fprintln(w, r.String())
	case "go":
		_, err = fmt.Fprintln(w, r.GoString())
	case "json":
		err = source.EncodeJSON(w, r)
	case "arrow":
		if o.out == "" {
			return fmt.Errorf("arrow output needs --out")
		}
		err = source.WriteArrow(w, r)
	default:
		err = fmt.Errorf("unknown format %q", o.format)
	}
	return err
}

func newShowCmd(cfg **config.Config) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "show <relation>",
		Short: "Print a relation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := load(cmd.Context(), *cfg, args[0])
			if err != nil {
				return err
			}
			return out.write(cmd, r)
		},
	}
	out.register(cmd)
	return cmd
}

// queryFlags describe the expression applied to the named relation.  The
// operators apply in a fixed order: join or cross product, restriction, set
// operators, projection and then renaming.
type queryFlags struct {
	where     []string
	join      string
	kind      string
	on        string
	cross     string
	union     string
	diff      string
	intersect string
	project   string
	rename    string
	lazy      bool
	explain   bool
}

func newQueryCmd(cfg **config.Config) *cobra.Command {
	var q queryFlags
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "query <relation>",
		Short: "Evaluate an expression over a relation",
		Long: `Evaluate an expression over a relation.

Example:
  relalg query orders --join suppliers --on SNO=SNO --where "Qty >= 300" --project SName,PNO,Qty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := buildQuery(cmd, *cfg, args[0], q)
			if err != nil {
				return err
			}
			if q.explain {
				fmt.Fprintln(cmd.ErrOrStderr(), expr.String())
			}
			r := rel.Materialize(expr)
			if err := r.Err(); err != nil {
				return err
			}
			return out.write(cmd, r)
		},
	}

	fs := cmd.Flags()
	fs.StringArrayVarP(&q.where, "where", "w", nil, `Restrict to rows where a comparison holds, e.g. "City == 'Paris'" (repeatable)`)
	fs.StringVar(&q.join, "join", "", "Join with this relation")
	fs.StringVar(&q.kind, "kind", "inner", "Kind of join (inner, left, right, full)")
	fs.StringVar(&q.on, "on", "", "Columns equated by the join, e.g. SNO=SNO,#0=#1")
	fs.StringVar(&q.cross, "cross", "", "Cross product with this relation")
	fs.StringVar(&q.union, "union", "", "Union with this relation")
	fs.StringVar(&q.diff, "diff", "", "Remove the rows of this relation")
	fs.StringVar(&q.intersect, "intersect", "", "Keep only the rows also in this relation")
	fs.StringVarP(&q.project, "project", "p", "", "Columns to keep, in order, e.g. SNO,City")
	fs.StringVar(&q.rename, "rename", "", "New names for every column, in order")
	fs.BoolVar(&q.lazy, "lazy", false, "Evaluate the relation as a lazy sequence")
	fs.BoolVar(&q.explain, "explain", false, "Print the expression to stderr before evaluating it")
	out.register(cmd)
	return cmd
}

// buildQuery defers every operator onto the named relation without
// evaluating any of them.
func buildQuery(cmd *cobra.Command, cfg *config.Config, name string, q queryFlags) (*rel.Query, error) {
	ctx := cmd.Context()
	src, err := load(ctx, cfg, name)
	if err != nil {
		return nil, err
	}
	if q.lazy {
		src = rel.AsLazy(src)
	}
	expr := rel.Defer(src)

	if q.join != "" && q.cross != "" {
		return nil, fmt.Errorf("--join and --cross are exclusive")
	}
	if q.join != "" {
		r2, err := load(ctx, cfg, q.join)
		if err != nil {
			return nil, err
		}
		kind, ok := rel.ParseJoinKind(q.kind)
		if !ok || kind == rel.CrossJoin {
			return nil, fmt.Errorf("unknown join kind %q", q.kind)
		}
		if q.on == "" {
			return nil, fmt.Errorf("--join needs --on")
		}
		on, err := parseOn(q.on, src.Schema(), r2.Schema())
		if err != nil {
			return nil, err
		}
		expr = expr.Push(rel.JoinOp{Kind: kind, Operand: r2, On: on})
	}
	if q.cross != "" {
		r2, err := load(ctx, cfg, q.cross)
		if err != nil {
			return nil, err
		}
		expr = expr.Push(rel.JoinOp{Kind: rel.CrossJoin, Operand: r2})
	}

	for _, w := range q.where {
		p, err := parseWhere(w)
		if err != nil {
			return nil, err
		}
		expr = expr.Push(rel.SelectOp{Pred: p})
	}

	for _, s := range []struct {
		name string
		kind rel.SetKind
	}{{q.union, rel.SetUnion}, {q.diff, rel.SetDiff}, {q.intersect, rel.SetIntersect}} {
		if s.name == "" {
			continue
		}
		r2, err := load(ctx, cfg, s.name)
		if err != nil {
			return nil, err
		}
		expr = expr.Push(rel.SetOp{Kind: s.kind, Operand: r2})
	}

	if q.project != "" {
		cols, err := parseColRefs(strings.Split(q.project, ","))
		if err != nil {
			return nil, err
		}
		expr = expr.Push(rel.ProjectOp{Cols: cols})
	}
	if q.rename != "" {
		names := strings.Split(q.rename, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		expr = expr.Push(rel.RenameOp{Names: names})
	}
	return expr, nil
}
