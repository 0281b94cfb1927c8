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

	"github.com/consensys/go-bcedit/pkg/blocks"
	"github.com/consensys/go-bcedit/pkg/cmd/tui"
	"github.com/consensys/go-bcedit/pkg/method"
	"github.com/consensys/go-bcedit/pkg/util/termio"
	"github.com/consensys/go-bcedit/pkg/verify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [flags] method_file",
	Short: "Interactively edit the methods of a class.",
	Long: `Open an interactive terminal editor for the methods of a class.  Changes
are written back to the method file when saved.`,
	Run: func(cmd *cobra.Command, args []string) {
		var library *blocks.Library
		//
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			atexit.Exit(1)
		}
		//
		cfg := loadConfig(cmd)
		cls := readMethodFile(args[0])
		//
		if !GetFlag(cmd, "no-blocks") {
			library = openLibrary(cfg)
		}
		// Verifiers are constructed per method since they depend on its
		// locals.
		verifiers := func(m *method.Method) verify.Verifier {
			return verifierFor(cmd, m)
		}
		//
		term, err := termio.NewTerminal()
		if err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		}
		// Ensure the terminal is restored however we exit.
		atexit.Register(func() {
			//nolint:errcheck
			term.Restore()
		})
		//
		editor := tui.NewEditor(term, args[0], cls, cfg, library, verifiers)
		//
		if errs := editor.Start(); len(errs) > 0 {
			//nolint:errcheck
			term.Restore()
			//
			for _, err := range errs {
				log.Error(err)
				fmt.Fprintln(os.Stderr, err)
			}
			//
			atexit.Exit(3)
		}
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().Bool("no-blocks", false, "disable the block library")
}
