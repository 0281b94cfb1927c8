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
	"strings"

	"github.com/consensys/go-bcedit/pkg/blocks"
	"github.com/consensys/go-bcedit/pkg/config"
	"github.com/consensys/go-bcedit/pkg/editor"
	"github.com/consensys/go-bcedit/pkg/method"
	"github.com/consensys/go-bcedit/pkg/verify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		atexit.Exit(2)
	}
	//
	return r
}

// GetInt gets an expected integer flag, or exits if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		atexit.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		atexit.Exit(2)
	}
	//
	return r
}

// Load the configuration, either from the file given on the command line or by
// searching upwards from the working directory.  This also configures the log
// level.
func loadConfig(cmd *cobra.Command) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	//
	if filename := GetString(cmd, "config"); filename != "" {
		cfg, err = config.LoadFile(filename)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	//
	if err != nil {
		fmt.Println(err)
		atexit.Exit(2)
	}
	//
	if GetFlag(cmd, "no-verify") {
		cfg.Verify.OnEdit = false
	}
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(cfg.LogLevel())
	}
	//
	return cfg
}

// Read a method file, or exit if an error arises.
func readMethodFile(filename string) *method.Class {
	cls, err := method.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		atexit.Exit(2)
	}
	//
	return cls
}

// Write a method file, or exit if an error arises.
func writeMethodFile(filename string, cls *method.Class) {
	if err := method.WriteFile(filename, cls); err != nil {
		fmt.Println(err)
		atexit.Exit(2)
	}
}

// Select the methods of a class chosen on the command line.  A selector is
// either a method name or a name followed by a descriptor.  Without a selector,
// all methods are chosen.
func selectMethods(cmd *cobra.Command, cls *method.Class) []*method.Method {
	var (
		selector = GetString(cmd, "method")
		methods  []*method.Method
	)
	//
	for _, m := range cls.Methods {
		if selector == "" || selector == m.Name || selector == m.Key() {
			methods = append(methods, m)
		}
	}
	//
	if len(methods) == 0 {
		fmt.Printf("no method matching \"%s\" in %s\n", selector, cls.Name)
		atexit.Exit(2)
	}
	//
	return methods
}

// Select exactly one method of a class.
func selectMethod(cmd *cobra.Command, cls *method.Class) *method.Method {
	methods := selectMethods(cmd, cls)
	//
	if len(methods) > 1 {
		var keys []string
		//
		for _, m := range methods {
			keys = append(keys, m.Key())
		}
		//
		fmt.Printf("ambiguous method (use --method to select one of %s)\n", strings.Join(keys, ", "))
		atexit.Exit(2)
	}
	//
	return methods[0]
}

// Construct the verifier for a given method, or nil when verification is
// disabled.
func verifierFor(cmd *cobra.Command, m *method.Method) verify.Verifier {
	if GetFlag(cmd, "no-verify") {
		return nil
	}
	//
	return verify.Lint{MaxLocals: m.MaxLocals}
}

// Open a (non-interactive) view onto a given method.
func openView(cmd *cobra.Command, cls *method.Class, m *method.Method) *editor.View {
	opts := []editor.Option{editor.WithAutoVerify(false), editor.WithResolver(method.NewWorkspace(cls))}
	//
	if v := verifierFor(cmd, m); v != nil {
		opts = append(opts, editor.WithVerifier(v))
	}
	//
	return editor.Open(cls, m, opts...)
}

// Open the block library, or exit if an error arises.
func openLibrary(cfg *config.Config) *blocks.Library {
	lib, err := blocks.Open(cfg.BlocksPath())
	if err != nil {
		fmt.Println(err)
		atexit.Exit(2)
	}
	//
	atexit.Register(func() { lib.Close() })
	//
	return lib
}
