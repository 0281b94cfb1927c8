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

	"github.com/consensys/go-bcedit/pkg/insn"
	"github.com/consensys/go-bcedit/pkg/util/termio"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// blocksCmd represents the blocks command
var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Manage the library of saved instruction blocks.",
	Long: `Manage the library of named instruction blocks.  Blocks are copied from
one method and can be inserted into any compatible method.`,
}

var blocksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saved blocks.",
	Run: func(cmd *cobra.Command, args []string) {
		library := openLibrary(loadConfig(cmd))
		//
		entries, err := library.List()
		if err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		}
		//
		tp := termio.NewTablePrinter(4, uint(len(entries)))
		//
		for row, e := range entries {
			tp.SetRow(uint(row), e.Name, fmt.Sprintf("%d", e.Size), e.Source, e.Saved.Format("2006-01-02 15:04"))
		}
		//
		tp.SetSeparator("  ")
		//
		if err := tp.Print(os.Stdout); err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		}
	},
}

var blocksSaveCmd = &cobra.Command{
	Use:   "save [flags] name method_file",
	Short: "Save a range of instructions as a named block.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			atexit.Exit(1)
		}
		//
		var (
			library = openLibrary(loadConfig(cmd))
			cls     = readMethodFile(args[1])
			m       = selectMethod(cmd, cls)
			view    = openView(cmd, cls, m)
			from    = GetInt(cmd, "from")
			to      = GetInt(cmd, "to")
			indices []int
		)
		//
		if to < 0 {
			to = view.Len() - 1
		}
		//
		for i := from; i <= to; i++ {
			indices = append(indices, i)
		}
		//
		if err := view.SelectIndices(indices...); err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		}
		//
		block := view.CopySelection()
		//
		if block == nil {
			fmt.Println("nothing selected")
			atexit.Exit(2)
		} else if block.HasExternalReferences() {
			fmt.Printf("warning: block refers to %d label(s) outside it\n", len(block.ExternalTargets()))
		}
		//
		id, err := library.Save(args[0], block)
		if err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		}
		//
		fmt.Printf("saved %s (%d instructions, %s)\n", args[0], block.Len(), id)
	},
}

var blocksInsertCmd = &cobra.Command{
	Use:   "insert [flags] name method_file",
	Short: "Insert a named block into a method.",
	Long: `Insert a named block into a method, after the instruction at a given index
(or at the end when the index is negative).  The method file is rewritten.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			atexit.Exit(1)
		}
		//
		var (
			library = openLibrary(loadConfig(cmd))
			cls     = readMethodFile(args[1])
			m       = selectMethod(cmd, cls)
			view    = openView(cmd, cls, m)
			after   = GetInt(cmd, "after")
		)
		//
		block, err := library.Load(args[0])
		if err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		}
		//
		// An empty method is seeded first, and the block then follows its start
		// label.
		if view.NeedsSeed() {
			if err := view.Seed(); err != nil {
				fmt.Println(err)
				atexit.Exit(2)
			}
			//
			after = max(after, 0)
		}
		//
		var anchor insn.Instruction
		//
		if after >= view.Len() {
			fmt.Printf("invalid index %d\n", after)
			atexit.Exit(2)
		} else if after >= 0 {
			anchor = view.Graph().At(after)
		}
		//
		if err := view.PasteAfter(anchor, block); err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		}
		//
		writeMethodFile(args[1], cls)
		fmt.Printf("inserted %s into %s (%d instructions)\n", args[0], m, block.Len())
	},
}

var blocksDeleteCmd = &cobra.Command{
	Use:   "delete name",
	Short: "Delete a named block.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			atexit.Exit(1)
		}
		//
		library := openLibrary(loadConfig(cmd))
		//
		if err := library.Delete(args[0]); err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(blocksCmd)
	blocksCmd.AddCommand(blocksListCmd)
	blocksCmd.AddCommand(blocksSaveCmd)
	blocksCmd.AddCommand(blocksInsertCmd)
	blocksCmd.AddCommand(blocksDeleteCmd)
	blocksSaveCmd.Flags().Int("from", 0, "index of first instruction in block")
	blocksSaveCmd.Flags().Int("to", -1, "index of last instruction in block (default is the last instruction)")
	blocksInsertCmd.Flags().Int("after", -1, "index of instruction after which to insert (default is the end)")
}
