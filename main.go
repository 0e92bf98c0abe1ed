/*
 * VM64 - Main program.
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
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	reader "github.com/rcornwell/VM64/command/reader"
	core "github.com/rcornwell/VM64/emu/core"
	logger "github.com/rcornwell/VM64/util/logger"

	_ "github.com/rcornwell/VM64/config/debugconfig"
	_ "github.com/rcornwell/VM64/emu/memory"
	_ "github.com/rcornwell/VM64/emu/test_dev"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "VM64.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optBoot := getopt.StringLong("boot", 'b', "", "Boot image to attach")
	optRun := getopt.BoolLong("run", 'r', "Start machine before console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file io.Writer
	if *optLogFile != "" {
		logFile, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		defer logFile.Close()
		file = logFile
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, *optDebug))
	slog.SetDefault(Logger)

	Logger.Info("VM64 Started")

	machine, err := core.New()
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	_, err = os.Stat(*optConfig)
	switch {
	case err == nil:
		err = machine.LoadConfig(*optConfig)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	case os.IsNotExist(err) && *optBoot != "":
		Logger.Warn("Configuration file " + *optConfig + " can't be found")
	default:
		Logger.Error("Configuration file " + *optConfig + " can't be found")
		os.Exit(1)
	}

	if *optBoot != "" {
		if err := machine.LoadBoot(*optBoot); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	// Enumerate devices so processor starts at boot address.
	machine.Reset()
	if *optRun {
		machine.Start()
	}

	reader.ConsoleReader(machine)

	machine.Shutdown()
	Logger.Info("VM64 stopped.")
}
