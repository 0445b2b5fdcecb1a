/*
 * D17B/D37C - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	reader "github.com/nscguidance/d17b/command/reader"
	config "github.com/nscguidance/d17b/config/machineconfig"
	cpupkg "github.com/nscguidance/d17b/emu/cpu"
	logger "github.com/nscguidance/d17b/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optMode := getopt.StringLong("mode", 'm', "d37c", "Machine mode: d17b or d37c")
	optTest := getopt.BoolLong("test", 't', "Run the canned self-test and exit")
	optInteractive := getopt.BoolLong("interactive", 'i', "Interactive shell")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	// Default is D37C mode (SPEC_FULL.md §6.3). A config file can
	// override the default and the -l/-d logging flags; an explicit
	// -m/-l/-d always overrides the config file.
	d37cMode := true
	var memLimit uint32
	logFile := *optLogFile
	debug := *optDebug

	if *optConfig != "" {
		cfg, err := config.Load(*optConfig)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		d37cMode = cfg.D37CMode
		memLimit = cfg.MemLimit
		if !getopt.IsSet("log") && cfg.LogFile != "" {
			logFile = cfg.LogFile
		}
		if !getopt.IsSet("debug") && cfg.Debug {
			debug = true
		}
	}

	if getopt.IsSet("mode") {
		d37cMode = *optMode == "d37c"
	}

	var file *os.File
	if logFile != "" {
		file, _ = os.Create(logFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(Logger)

	if *optTest {
		if err := cpupkg.SelfTest(); err != nil {
			fmt.Println("*** TEST FAILED: " + err.Error())
			os.Exit(1)
		}
		fmt.Println("*** ALL TESTS PASSED ***")
		os.Exit(0)
	}

	cpu := cpupkg.New(d37cMode)
	if memLimit != 0 && memLimit < cpu.Mem.Limit {
		cpu.Mem.Limit = memLimit
	}

	if *optInteractive {
		reader.ConsoleReader(cpu)
		os.Exit(0)
	}

	getopt.Usage()
}
