/**
 * Copyright 2024 The NullDB Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nulldb/nulldb/pkg/common"
	"github.com/nulldb/nulldb/pkg/nulldb"
	log "github.com/sirupsen/logrus"
)

var (
	configFilePath     = "/etc/nulldb.yaml"
	configFilePathFlag = flag.String("configFilePath", "", "overrides the default config file path")
	scriptFlag         = flag.String("script", "", "lesson script file to execute instead of starting the repl")
)

func main() {
	flag.Parse()
	log.SetFormatter(&log.JSONFormatter{})

	log.Info("nulldbmain::main::main; starting")
	conf := common.NewDefaultClientConfig()
	if *configFilePathFlag != "" {
		configFilePath = *configFilePathFlag
	}
	conf.LoadFromFile(configFilePath)
	if err := conf.Validate(); err != nil {
		log.Fatal(fmt.Sprintf("nulldbmain::main::main; invalid config, error %s", err))
	}

	level, _ := log.ParseLevel(conf.LogLevel)
	log.SetLevel(level)

	c := nulldb.NewClient("repl")

	scripts := conf.Scripts
	if *scriptFlag != "" {
		scripts = append(scripts, *scriptFlag)
	}
	for _, path := range scripts {
		if err := runScript(c, path); err != nil {
			log.Fatal(fmt.Sprintf("nulldbmain::main::main; error running script %s, error %s", path, err))
		}
	}

	if *scriptFlag != "" {
		return
	}

	var cmd string
	for {
		fmt.Printf("%s", conf.Prompt)
		reader := bufio.NewReader(os.Stdin)
		if cmd, _ = reader.ReadString('\n'); true {
			cmd = strings.Trim(cmd, " \n")
		}

		if cmd == "exit" {
			break
		}
		if cmd == "" {
			continue
		}

		res, err := c.Execute(cmd)
		if err != nil {
			fmt.Printf("error: %s\n", err)
			continue
		}
		printResult(res)
	}
}

// runScript executes a lesson script file, printing every result
func runScript(c *nulldb.Client, path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	results, err := c.ExecuteScript(string(data))
	for _, res := range results {
		printResult(res)
	}

	return err
}

func printResult(res nulldb.Result) {
	if res.HasError() {
		fmt.Printf("error: %s\n", res.GetError())
		return
	}

	switch r := res.(type) {
	case *nulldb.SelectResult:
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, strings.Join(r.Columns, "\t"))

		for _, row := range r.Rows {
			vals := make([]string, 0, len(r.Columns))
			for _, col := range r.Columns {
				vals = append(vals, row[col].String())
			}
			fmt.Fprintln(w, strings.Join(vals, "\t"))
		}
		w.Flush()
		fmt.Printf("(%d rows)\n", len(r.Rows))

	case *nulldb.InsertResult:
		fmt.Printf("inserted %d rows\n", r.Inserted)

	case *nulldb.UpdateResult:
		fmt.Printf("updated %d rows\n", r.Updated)

	case *nulldb.DeleteResult:
		fmt.Printf("deleted %d rows\n", r.Deleted)

	default:
		fmt.Println("ok")
	}
}
