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
	"fmt"
	"time"

	"github.com/consensys/go-bcedit/pkg/util"
	"github.com/consensys/go-bcedit/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [flags] method_file",
	Short: "Verify one or more methods.",
	Long: `Verify the methods of a class, reporting the outcome for each.  This exits
with a non-zero status if any method fails verification.`,
	Run: func(cmd *cobra.Command, args []string) {
		var failures uint
		//
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			atexit.Exit(1)
		}
		//
		cfg := loadConfig(cmd)
		cls := readMethodFile(args[0])
		timeout := time.Duration(GetInt(cmd, "timeout")) * time.Second
		methods := selectMethods(cmd, cls)
		tp := termio.NewTablePrinter(2, uint(len(methods)))
		//
		for row, m := range methods {
			var (
				view        = openView(cmd, cls, m)
				ctx, cancel = context.WithTimeout(context.Background(), timeout)
				status      termio.FormattedText
				stats       = util.NewPerfStats()
			)
			//
			err := view.VerifyNow(ctx)
			//
			cancel()
			stats.Log(fmt.Sprintf("verifying %s", m))
			//
			switch result := view.Overlay().Result(); {
			case err != nil:
				log.Debugf("verifying %s: %v", m, err)
				status = termio.NewColouredText(err.Error(), termio.TERM_YELLOW)
				failures++
			case result.Valid:
				status = termio.NewColouredText("ok", termio.TERM_GREEN)
			default:
				status = termio.NewColouredText(result.Summary(cfg.Verify.MaxMessage), termio.TERM_RED)
				failures++
			}
			//
			tp.Set(0, uint(row), termio.NewText(m.Key()))
			tp.Set(1, uint(row), status)
			//
			view.Close()
		}
		//
		if err := tp.Print(cmd.OutOrStdout()); err != nil {
			fmt.Println(err)
			atexit.Exit(2)
		} else if failures > 0 {
			fmt.Printf("%d of %d method(s) failed verification\n", failures, len(methods))
			atexit.Exit(1)
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Int("timeout", 10, "timeout (in seconds) for verifying each method")
}
