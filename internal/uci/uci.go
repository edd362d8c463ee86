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

// Package uci contains the UciHandler data structure and functionality to
// handle the UCI protocol communication between the Chess User Interface
// and the chess engine. This is a boundary surface, not part of the engine
// core - it exists to exercise the core through a conventional chess GUI
// wire format, nothing more.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/dkoch/gochess/internal/logging"
	"github.com/dkoch/gochess/internal/movegen"
	"github.com/dkoch/gochess/internal/position"
	"github.com/dkoch/gochess/internal/search"
	. "github.com/dkoch/gochess/internal/types"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

const engineName = "gochess"
const engineVersion = "0.1"

// UciHandler handles all communication with the chess ui via UCI
// and controls options and search.
// Create an instance with NewUciHandler()
type UciHandler struct {
	InIo       *bufio.Scanner
	OutIo      *bufio.Writer
	myMoveGen  *movegen.Movegen
	mySearch   *search.Search
	myPosition *position.Position
	myPerft    *movegen.Perft
}

// NewUciHandler creates a new UciHandler instance.
// Input / Output io can be replaced by changing the instance's
// InIo and OutIo members.
//  Example:
// 		u.InIo = bufio.NewScanner(os.Stdin)
//		u.OutIo = bufio.NewWriter(os.Stdout)
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.NewMoveGen(),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(),
		myPerft:    movegen.NewPerft(),
	}
}

// Loop starts the main loop to receive commands through
// input stream (pipe or user)
func (u *UciHandler) Loop() {
	for {
		for u.InIo.Scan() {
			if u.handleReceivedCommand(u.InIo.Text()) {
				return
			}
		}
	}
}

// Command handles a single line of UCI protocol aka command.
// Returns the uci response as string output.
// Mostly useful for debugging and unit testing.
func (u *UciHandler) Command(cmd string) string {
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	return buffer.String()
}

// SendResult sends the search result to the UCI ui after the search has
// ended. There is no pondering in this engine, so there is never a ponder
// move to report.
func (u *UciHandler) SendResult(bestMove Move) {
	u.send("bestmove " + bestMove.StringUci())
}

var regexWhiteSpace = regexp.MustCompile(`\s+`)

func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	if len(cmd) == 0 {
		return false
	}
	log.Debugf("Received command: %s", cmd)
	tokens := regexWhiteSpace.Split(cmd, -1)
	firstToken := strings.TrimSpace(tokens[0])
	switch firstToken {
	case "quit":
		return true
	case "uci":
		u.uciCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "isready":
		u.send("readyok")
	case "ucinewgame":
		u.uciNewGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.stopCommand()
	case "register":
		u.registerCommand()
	case "debug":
		u.debugCommand()
	case "perft":
		u.perftCommand(tokens)
	case "noop":
	default:
		log.Warningf("Error: Unknown command: %s", cmd)
	}
	return false
}

// command handler when the "uci" cmd has been received.
// Responds with "id" and "options"
func (u *UciHandler) uciCommand() {
	u.send(out.Sprintf("id name %s %s", engineName, engineVersion))
	u.send("id author the gochess contributors")
	for _, o := range uciOptions.GetOptions() {
		u.send(o)
	}
	u.send("uciok")
}

// the set option command reads the option name and the optional value
// and checks if the uci option exists. If it does its new value will
// be stored and its handler function will be called
func (u *UciHandler) setOptionCommand(tokens []string) {
	name := ""
	value := ""
	if len(tokens) > 1 && tokens[1] == "name" {
		i := 2
		for i < len(tokens) && tokens[i] != "value" {
			name += tokens[i] + " "
			i++
		}
		name = strings.TrimSpace(name)
		if len(tokens) > i && tokens[i] == "value" && len(tokens) > i+1 {
			value += tokens[i+1]
		}
	} else {
		msg := "Command 'setoption' is malformed"
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	o, found := uciOptions[name]
	if found {
		o.CurrentValue = value
		o.HandlerFunc(u, o)
	} else {
		msg := out.Sprintf("Command 'setoption': No such option '%s'", name)
		u.SendInfoString(msg)
		log.Warning(msg)
	}
}

// sends a stop signal to search or perft
func (u *UciHandler) stopCommand() {
	u.mySearch.StopSearch()
	u.myPerft.Stop()
}

// starts a perft test with the given depth (or depth range) from the
// standard starting position.
func (u *UciHandler) perftCommand(tokens []string) {
	depth := 4
	if len(tokens) > 1 {
		if d, err := strconv.Atoi(tokens[1]); err == nil {
			depth = d
		} else {
			log.Warningf("Can't perft on depth='%s'", tokens[1])
		}
	}
	depth2 := depth
	if len(tokens) > 2 {
		if d, err := strconv.Atoi(tokens[2]); err == nil {
			depth2 = d
		} else {
			log.Warningf("Can't use second perft depth2='%s'", tokens[2])
		}
	}
	go u.myPerft.StartPerftMulti(position.StartFen, depth, depth2)
}

// starts a search after reading in the search limits provided, and
// reports the result asynchronously once the search finishes - there is
// no iterative deepening in this engine, so only one "info" line is ever
// sent per search.
func (u *UciHandler) goCommand(tokens []string) {
	searchLimits, malformed := u.readSearchLimits(tokens)
	if malformed {
		return
	}
	u.mySearch.StartSearch(*u.myPosition, *searchLimits)
	go func() {
		u.mySearch.WaitWhileSearching()
		result := u.mySearch.LastSearchResult()
		u.send(fmt.Sprintf("info depth %d score %s nodes %d time %d",
			result.SearchDepth, result.BestValue.String(), result.Nodes, result.SearchTime.Milliseconds()))
		u.SendResult(result.BestMove)
	}()
}

// sets the current position as given by the uci command
func (u *UciHandler) positionCommand(tokens []string) {
	fen := position.StartFen
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			fenb.WriteString(tokens[i])
			fenb.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(fenb.String())
		if len(fen) == 0 {
			msg := out.Sprintf("Command 'position' malformed. %s", tokens)
			u.SendInfoString(msg)
			log.Warning(msg)
			return
		}
	default:
		msg := out.Sprintf("Command 'position' malformed. %s", tokens)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	p, err := position.NewPositionFen(fen)
	if err != nil {
		msg := out.Sprintf("Command 'position' malformed fen '%s': %v", fen, err)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	u.myPosition = p

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for i < len(tokens) {
			move := u.myMoveGen.GetMoveFromUci(u.myPosition, tokens[i])
			if !move.IsValid() {
				msg := out.Sprintf("Command 'position' malformed. Invalid move '%s' (%s)", tokens[i], tokens)
				u.SendInfoString(msg)
				log.Warning(msg)
				return
			}
			u.myPosition.DoMove(move)
			i++
		}
	}
	log.Debugf("New position: %s", u.myPosition.StringFen())
}

// Signals the search to stop a running search and that a new game should
// be started. Resets the position and clears the transposition table.
func (u *UciHandler) uciNewGameCommand() {
	u.myPosition = position.NewPosition()
	u.mySearch.NewGame()
}

// will not be implemented
func (u *UciHandler) debugCommand() {
	msg := "Command 'debug' not implemented"
	u.SendInfoString(msg)
	log.Warning(msg)
}

// will not be implemented
func (u *UciHandler) registerCommand() {
	msg := "Command 'register' not implemented"
	u.SendInfoString(msg)
	log.Warning(msg)
}

// readSearchLimits reads the "go" subcommand tokens. This engine only
// honors a fixed search depth - time control, pondering, mate search and
// node limits are all Non-goals, so their tokens are recognized (to stay
// compatible with a GUI that always sends them) and otherwise ignored.
func (u *UciHandler) readSearchLimits(tokens []string) (*search.Limits, bool) {
	searchLimits := search.NewSearchLimits()
	i := 1
	for i < len(tokens) {
		switch tokens[i] {
		case "depth":
			i++
			if i >= len(tokens) {
				msg := "UCI command go malformed. Depth value missing"
				u.SendInfoString(msg)
				log.Warning(msg)
				return nil, true
			}
			depth, err := strconv.Atoi(tokens[i])
			if err != nil {
				msg := out.Sprintf("UCI command go malformed. Depth value not a number: %s", tokens[i])
				u.SendInfoString(msg)
				log.Warning(msg)
				return nil, true
			}
			searchLimits.Depth = depth
			i++
		case "infinite", "ponder":
			i++
		case "nodes", "mate", "movetime", "moveTime", "wtime", "btime", "winc", "binc", "movestogo":
			// recognized but not honored - this engine has no time control,
			// mate search or node limit, only a fixed depth
			i++
			if i < len(tokens) {
				i++
			}
		case "moves":
			i++
			for i < len(tokens) {
				move := u.myMoveGen.GetMoveFromUci(u.myPosition, tokens[i])
				if !move.IsValid() {
					break
				}
				i++
			}
		default:
			msg := out.Sprintf("UCI command go malformed. Invalid subcommand: %s", tokens[i])
			u.SendInfoString(msg)
			log.Warning(msg)
			return nil, true
		}
	}
	return searchLimits, false
}

// SendInfoString sends an arbitrary string to the UCI user interface.
func (u *UciHandler) SendInfoString(info string) {
	u.send(out.Sprintf("info string %s", info))
}

// sends any string to the UCI user interface
func (u *UciHandler) send(s string) {
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}
