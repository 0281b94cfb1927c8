// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/consensys/go-bcedit/pkg/editor"
	"github.com/consensys/go-bcedit/pkg/util/termio"
	"github.com/consensys/go-bcedit/pkg/xref"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"
)

// xrefCmd represents the xref command
var xrefCmd = &cobra.Command{
	Use:   "xref [flags] method_file index",
	Short: "Show the instructions related to a given instruction.",
	Long: `Select the instruction at a given index of a method, and show those
instructions related to it (e.g. jump targets, references to a label or accesses
of the same local variable).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			atexit.Exit(1)
		}
		//
		index, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("invalid index \"%s\"\n", args[1])
			atexit.Exit(2)
		}
		//
		cfg := loadConfig(cmd)
		cls := readMethodFile(args[0])
		m := selectMethod(cmd, cls)
		view := openView(cmd, cls, m)
		//
		if err := view.SelectIndices(index); err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		}
		//
		colour := !GetFlag(cmd, "no-colour") && term.IsTerminal(int(os.Stdout.Fd()))
		highlights := view.Highlights()
		//
		if GetFlag(cmd, "related") {
			printRelated(view, xref.RelatedTo(view.Graph(), view.Focus()), colour)
		} else if err := printView(view, highlights, colour, cfg.Verify.MaxMessage); err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		}
	},
}

// Print only the related instructions, one per line.
func printRelated(view *editor.View, refs []xref.Reference, colour bool) {
	tp := termio.NewTablePrinter(4, uint(len(refs)))
	//
	for row, ref := range refs {
		rep, _ := view.Representation(ref.Insn)
		format := termio.NewAnsiEscape().FgColour(styleColour([]string{ref.Relation.Style()}))
		//
		tp.Set(0, uint(row), termio.NewText(fmt.Sprintf("%4d", view.Graph().IndexOf(ref.Insn))))
		tp.Set(1, uint(row), termio.NewFormattedText(ref.Relation.String(), format))
		tp.Set(2, uint(row), termio.NewText(rep.Op))
		tp.Set(3, uint(row), termio.NewText(rep.Operands))
	}
	//
	tp.AnsiEscapes(colour)
	//
	if err := tp.Print(os.Stdout); err != nil {
		fmt.Println(err)
		atexit.Exit(2)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(xrefCmd)
	xrefCmd.Flags().Bool("no-colour", false, "disable colour output")
	xrefCmd.Flags().BoolP("related", "r", false, "only show related instructions")
}
