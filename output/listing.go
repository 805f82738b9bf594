package output

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
)

// Entry is one line of a signature listing.
type Entry struct {
	// Name identifies the mapped type, e.g. a declaration or field name.
	Name string

	Descriptor string

	// Signature is the generic signature; empty when it equals Descriptor.
	Signature string
}

// Listing renders entries as an aligned table sorted by name.
// The header line names the source the entries were generated from.
func Listing(source string, entries []Entry) []byte {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", source)
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, e := range sorted {
		sig := e.Signature
		if sig == "" || sig == e.Descriptor {
			sig = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Descriptor, sig)
	}
	tw.Flush()
	return buf.Bytes()
}
