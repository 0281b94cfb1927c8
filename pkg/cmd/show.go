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
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-bcedit/pkg/editor"
	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/util/termio"
	"github.com/consensys/go-bcedit/pkg/verify"
	"github.com/consensys/go-bcedit/pkg/xref"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [flags] method_file",
	Short: "Print the instructions of one or more methods.",
	Long: `Print the instructions of one or more methods in a class, one per line.
Unless verification is disabled, each method is verified first and the offending
instruction (if any) is annotated.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			atexit.Exit(1)
		}
		//
		cfg := loadConfig(cmd)
		cls := readMethodFile(args[0])
		colour := !GetFlag(cmd, "no-colour") && term.IsTerminal(int(os.Stdout.Fd()))
		//
		for _, m := range selectMethods(cmd, cls) {
			view := openView(cmd, cls, m)
			//
			if err := view.VerifyNow(context.Background()); err != nil &&
				!errors.Is(err, verify.ErrVerificationUnavailable) {
				log.Errorf("verifying %s: %v", m, err)
			}
			//
			fmt.Printf("%s (%s)\n", m, view.Overlay().State())
			//
			if err := printView(view, nil, colour, cfg.Verify.MaxMessage); err != nil {
				fmt.Println(err)
				atexit.Exit(2)
			}
			//
			view.Close()
		}
	},
}

// Print the instructions of a view as a table.  Instructions with a highlight
// style are annotated with the corresponding relation, whilst the cause of a
// failed verification is annotated with its message.
func printView(view *editor.View, styles map[insn.Instruction][]string, colour bool, maxMessage uint) error {
	var (
		code    = view.CurrentOrder()
		overlay = view.Overlay()
		tp      = termio.NewTablePrinter(4, uint(len(code)))
	)
	//
	for row, i := range code {
		var (
			rep, _ = view.Representation(i)
			format = termio.NewAnsiEscape()
			notes  []string
		)
		//
		if overlay.IsCause(i) {
			format = format.FgColour(termio.TERM_RED)
			notes = append(notes, overlay.Result().Summary(maxMessage))
		} else if len(styles[i]) > 0 {
			format = format.FgColour(styleColour(styles[i]))
			notes = append(notes, styles[i]...)
		}
		//
		op := rep.Op
		//
		if i.Kind() != insn.LABEL {
			op = "  " + op
		}
		//
		tp.Set(0, uint(row), termio.NewText(fmt.Sprintf("%4d", row)))
		tp.Set(1, uint(row), termio.NewFormattedText(op, format))
		tp.Set(2, uint(row), termio.NewFormattedText(rep.Operands, format))
		tp.Set(3, uint(row), termio.NewFormattedText(strings.Join(notes, ", "), format))
	}
	//
	tp.SetMaxWidth(2, 48)
	tp.AnsiEscapes(colour)
	//
	return tp.Print(os.Stdout)
}

// Colour used for the highest priority style in a given set.
func styleColour(styles []string) uint {
	for _, style := range styles {
		switch style {
		case xref.STYLE_SELECTED:
			return termio.TERM_YELLOW
		case xref.STYLE_JUMPDEST:
			return termio.TERM_GREEN
		case xref.STYLE_JUMPDEST_FAIL:
			return termio.TERM_MAGENTA
		case xref.STYLE_REVERSE:
			return termio.TERM_CYAN
		}
	}
	//
	return termio.TERM_BLUE
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("no-colour", false, "disable colour output")
}
