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

package uci

import (
	"strconv"
	"strings"

	. "github.com/dkoch/gochess/internal/config"
)

// init defines all available uci options and stores them into uciOptions.
// Only the knobs config.searchConfiguration actually exposes are surfaced
// here - quiescence/killer/IID/null-move/LMR/eval options all tune search
// extensions this engine does not implement.
func init() {
	uciOptions = map[string]*uciOption{
		"Clear Hash": {NameID: "Clear Hash", HandlerFunc: clearCache, OptionType: Button},
		"Use_Hash":   {NameID: "Use_Hash", HandlerFunc: useCache, OptionType: Check, DefaultValue: strconv.FormatBool(Settings.Search.UseTT), CurrentValue: strconv.FormatBool(Settings.Search.UseTT)},
		"Hash":       {NameID: "Hash", HandlerFunc: cacheSize, OptionType: Spin, DefaultValue: strconv.Itoa(Settings.Search.TTSize), CurrentValue: strconv.Itoa(Settings.Search.TTSize), MinValue: "0", MaxValue: "65000"},
		"Threads":    {NameID: "Threads", HandlerFunc: workerCount, OptionType: Spin, DefaultValue: strconv.Itoa(Settings.Search.WorkerCount), CurrentValue: strconv.Itoa(Settings.Search.WorkerCount), MinValue: "1", MaxValue: "64"},
	}
	sortOrderUciOptions = []string{
		"Clear Hash",
		"Use_Hash",
		"Hash",
		"Threads",
	}
}

// GetOptions returns all available uci options as a slice of strings to
// be sent to the UCI user interface during protocol initialization.
func (o optionMap) GetOptions() []string {
	options := make([]string, 0, len(sortOrderUciOptions))
	for _, name := range sortOrderUciOptions {
		options = append(options, o[name].String())
	}
	return options
}

// String for uciOption returns a representation of the uci option as
// required by the UCI protocol during initialization.
func (o *uciOption) String() string {
	var os strings.Builder
	os.WriteString("option name ")
	os.WriteString(o.NameID)
	os.WriteString(" type ")
	switch o.OptionType {
	case Check:
		os.WriteString("check default ")
		os.WriteString(o.DefaultValue)
	case Spin:
		os.WriteString("spin default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" min ")
		os.WriteString(o.MinValue)
		os.WriteString(" max ")
		os.WriteString(o.MaxValue)
	case Button:
		os.WriteString("button")
	}
	return os.String()
}

// uciOptionType is an enum representing the different UCI option types.
type uciOptionType int

const (
	Check  uciOptionType = 0
	Spin   uciOptionType = 1
	Button uciOptionType = 2
)

// optionHandler is called when the "setoption" command changes an option.
type optionHandler func(*UciHandler, *uciOption)

// uciOption defines a single UCI option as described by the UCI protocol.
type uciOption struct {
	NameID       string
	HandlerFunc  optionHandler
	OptionType   uciOptionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	CurrentValue string
}

type optionMap map[string]*uciOption

// uciOptions stores all available uci options.
var uciOptions optionMap

// sortOrderUciOptions controls the order options are reported in.
var sortOrderUciOptions []string

func clearCache(u *UciHandler, o *uciOption) {
	u.mySearch.ClearHash()
	log.Debug("Cleared Cache")
}

func useCache(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	Settings.Search.UseTT = v
	log.Debugf("Set Use Hash to %v", Settings.Search.UseTT)
}

func cacheSize(u *UciHandler, o *uciOption) {
	v, _ := strconv.Atoi(o.CurrentValue)
	Settings.Search.TTSize = v
	u.mySearch.ResizeCache()
}

func workerCount(u *UciHandler, o *uciOption) {
	v, _ := strconv.Atoi(o.CurrentValue)
	Settings.Search.WorkerCount = v
	log.Debugf("Set worker count to %v", Settings.Search.WorkerCount)
}
