//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoch/gochess/internal/config"
	"github.com/dkoch/gochess/internal/logging"
	"github.com/dkoch/gochess/internal/movegen"
	"github.com/dkoch/gochess/internal/position"
	"github.com/dkoch/gochess/internal/uci"
)

const engineName = "gochess"
const engineVersion = "0.1"

var out = message.NewPrinter(language.German)

func main() {
	versionInfo := flag.Bool("version", false, "print engine version and exit")
	configFile := flag.String("config", "./config.toml", "path to the configuration file")
	logLvl := flag.String("loglvl", "", "overrides the configured general log level")
	searchLogLvl := flag.String("searchloglvl", "", "overrides the configured search log level")
	perftFlag := flag.Int("perft", 0, "run perft to the given depth from -fen (or the start position) and exit")
	fen := flag.String("fen", position.StartFen, "fen to use for -perft")

	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	config.ConfFile = *configFile
	config.Setup()
	if *logLvl != "" {
		config.Settings.Log.LogLvl = *logLvl
		config.LogLevel = config.LogLevels[*logLvl]
	}
	if *searchLogLvl != "" {
		config.Settings.Log.SearchLogLvl = *searchLogLvl
		config.SearchLogLevel = config.LogLevels[*searchLogLvl]
	}
	log := logging.GetLog()
	log.Infof("%s %s starting up", engineName, engineVersion)

	if *perftFlag > 0 {
		p := movegen.NewPerft()
		p.StartPerftMulti(*fen, 1, *perftFlag)
		return
	}

	handler := uci.NewUciHandler()
	handler.Loop()
}

func printVersionInfo() {
	out.Printf("%s %s\n", engineName, engineVersion)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("Compiler: %s\n", runtime.Compiler)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	fmt.Printf("CWD: %s\n", cwd)
}
