// Package report renders analyses for humans. It is a thin presentation
// layer: everything it prints comes from the sizing registry or a cost
// breakdown, and nothing in the core depends on it.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/cost"
	"github.com/yasmine-maarbani/BigDataStructure-TD1/internal/sizing"
)

// PrintCollection writes the size analysis of one registered collection
func PrintCollection(w io.Writer, coll *sizing.Collection) {
	fmt.Fprintf(w, "COLLECTION %s (detected: %s)\n", coll.Name, coll.Entity)
	fmt.Fprintf(w, "  documents: %d, merges: %d\n", coll.DocCount, coll.Size.Merges)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  scalars (outside arrays)\t%s\n", bytes(coll.Size.Outside))
	fmt.Fprintf(tw, "  scalars (inside arrays)\t%s\n", bytes(coll.Size.Inside))
	fmt.Fprintf(tw, "  keys\t%s\n", bytes(coll.Size.Keys))
	fmt.Fprintf(tw, "  document\t%s\n", bytes(coll.Size.Document))
	fmt.Fprintf(tw, "  collection\t%.4f GB\n", coll.Size.Collection/1e9)
	tw.Flush()

	if len(coll.Size.ArrayLengths) > 0 {
		names := make([]string, 0, len(coll.Size.ArrayLengths))
		for name := range coll.Size.ArrayLengths {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  array '%s': avg length %.0f\n", name, coll.Size.ArrayLengths[name])
		}
	}
}

// PrintDatabase writes the per-collection and total database sizes
func PrintDatabase(w io.Writer, reg *sizing.Registry) error {
	total, perCollection, err := reg.DatabaseSize()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "DATABASE SUMMARY")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range reg.Names() {
		coll, err := reg.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "  %s\t%.4f GB\t(%d docs)\n", name, perCollection[name]/1e9, coll.DocCount)
	}
	fmt.Fprintf(tw, "  TOTAL\t%.4f GB\n", total/1e9)
	return tw.Flush()
}

// PrintDistribution writes per-server sharding averages
func PrintDistribution(w io.Writer, d sizing.Distribution) {
	fmt.Fprintf(w, "SHARDING %s on #%s\n", d.Collection, d.ShardKey)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  total documents\t%d\n", d.TotalDocs)
	fmt.Fprintf(tw, "  distinct values\t%d\n", d.DistinctValues)
	fmt.Fprintf(tw, "  servers\t%d\n", d.Servers)
	fmt.Fprintf(tw, "  docs/server\t%.2f\n", d.AvgDocsPerServer)
	fmt.Fprintf(tw, "  distinct values/server\t%.2f\n", d.AvgValuesPerServer)
	tw.Flush()
}

// PrintBreakdown writes the phase costs of one priced query
func PrintBreakdown(w io.Writer, label string, b *cost.Breakdown) {
	fmt.Fprintf(w, "COST %s (%s)\n", label, b.Shape)
	if b.Note != "" {
		fmt.Fprintf(w, "  %s\n", b.Note)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  C1\t%s\t%s\n", bytes(b.C1), b.C1Strategy)
	if b.Shuffle > 0 || b.NeedsShuffle {
		fmt.Fprintf(tw, "  shuffle\t%s\tneeded=%v\n", bytes(b.Shuffle), b.NeedsShuffle)
	}
	if b.C2 > 0 {
		fmt.Fprintf(tw, "  C2\t%s\t%s (loops: %d)\n", bytes(b.C2), b.C2Strategy, b.Loops)
	}
	if b.C3 > 0 {
		fmt.Fprintf(tw, "  C3\t%s\t%s (loops: %d)\n", bytes(b.C3), b.C3Strategy, b.Loops)
	}
	fmt.Fprintf(tw, "  Vt total\t%s\n", bytes(b.Total))
	tw.Flush()
}

func bytes(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.2f TB", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2f GB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MB", v/1e6)
	default:
		return fmt.Sprintf("%.0f B", v)
	}
}
