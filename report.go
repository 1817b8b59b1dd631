package heredity

import (
	"bufio"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
)

// WriteReport prints each person's distributions to w, four decimal places,
// gene counts from two copies down and the trait before its absence:
//
//	Harry:
//	  Gene:
//	    2: 0.0092
//	    1: 0.4557
//	    0: 0.5351
//	  Trait:
//	    True: 0.2665
//	    False: 0.7335
func WriteReport(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)

	for _, name := range r.Names {
		d := r.Posteriors[name]

		fmt.Fprintf(bw, "%s:\n", name)
		fmt.Fprintf(bw, "  Gene:\n")
		for g := TwoCopies; ; g-- {
			fmt.Fprintf(bw, "    %s: %.4f\n", g, d.GeneProbability(g))
			if g == NoCopies {
				break
			}
		}
		fmt.Fprintf(bw, "  Trait:\n")
		fmt.Fprintf(bw, "    True: %.4f\n", d.TraitProbability(true))
		fmt.Fprintf(bw, "    False: %.4f\n", d.TraitProbability(false))
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}
	return nil
}
