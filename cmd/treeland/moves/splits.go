// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package moves

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/treeland/rearrange"
)

func writeSplits(w io.Writer, branches []rearrange.Branch) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write([]string{"split", "trees", "best", "median"}); err != nil {
		return err
	}
	for _, b := range branches {
		s := summarize(0, b.Results)
		row := []string{
			strings.Join(b.Split, ","),
			strconv.Itoa(s.n),
			"NA",
			"NA",
		}
		if s.n > 0 {
			row[2] = strconv.FormatFloat(s.max, 'f', 6, 64)
			row[3] = strconv.FormatFloat(s.median, 'f', 6, 64)
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
