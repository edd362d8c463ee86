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
	"bufio"
	"bytes"
	"os"
	"path"
	"runtime"
	"strings"
	"testing"
	"time"

	logging2 "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/dkoch/gochess/internal/config"
	"github.com/dkoch/gochess/internal/logging"
	"github.com/dkoch/gochess/internal/position"
)

var logTest *logging2.Logger

// make tests run in the projects root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

// Setup the tests
func TestMain(m *testing.M) {
	config.Setup()
	logTest = logging.GetTestLog()
	code := m.Run()
	os.Exit(code)
}

func TestUciHandler_Loop(t *testing.T) {
	uh := NewUciHandler()
	uh.InIo = bufio.NewScanner(strings.NewReader("uci\nquit\n"))
	buffer := new(bytes.Buffer)
	uh.OutIo = bufio.NewWriter(buffer)
	uh.Loop()
	result := buffer.String()
	assert.Contains(t, result, "uciok")
}

func TestUciCommand(t *testing.T) {
	uh := NewUciHandler()
	result := uh.Command("uci")
	assert.Contains(t, result, "id name gochess")
	assert.Contains(t, result, "Clear Hash")
	assert.Contains(t, result, "uciok")
}

func TestIsreadyCmd(t *testing.T) {
	uh := NewUciHandler()
	result := uh.Command("isready")
	assert.Contains(t, result, "readyok")
}

func TestClearHash(t *testing.T) {
	uh := NewUciHandler()
	result := uh.Command("isready")
	assert.Contains(t, result, "readyok")
	result = uh.Command("setoption name Clear Hash")
	assert.NotContains(t, result, "No such option")
}

func TestResizeHash(t *testing.T) {
	uh := NewUciHandler()
	result := uh.Command("setoption name Hash value 512")
	assert.NotContains(t, result, "No such option")
	assert.EqualValues(t, 512, config.Settings.Search.TTSize)
}

func TestPositionCmd(t *testing.T) {
	uh := NewUciHandler()
	uh.Command("position startpos")
	assert.EqualValues(t, position.StartFen, uh.myPosition.StringFen())

	uh.Command("position fen " + position.StartFen)
	assert.EqualValues(t, position.StartFen, uh.myPosition.StringFen())

	result := uh.Command("position fen")
	assert.Contains(t, result, "Command 'position' malformed")

	uh.Command("position fen " + position.StartFen + "  moves     e2e4 e7e5 g1f3 b8c6")
	assert.EqualValues(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", uh.myPosition.StringFen())

	result = uh.Command("position fen " + position.StartFen + "  moves e7e5 g1f3 b8c6")
	assert.Contains(t, result, "Command 'position' malformed")

	uh.Command("position startpos  moves  e2e4 e7e5 g1f3 b8c6")
	assert.EqualValues(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", uh.myPosition.StringFen())
}

func TestReadSearchLimits(t *testing.T) {
	uciHandler := NewUciHandler()

	cmd := "go depth 6"
	tokens := regexWhiteSpace.Split(cmd, -1)
	sl, malformed := uciHandler.readSearchLimits(tokens)
	assert.False(t, malformed)
	assert.EqualValues(t, 6, sl.Depth)

	// Recognized-but-unhonored time control tokens must not be treated as
	// malformed - a real UCI GUI always sends them.
	cmd = "go wtime 60000 btime 60000 winc 2000 binc 2000 depth 6 nodes 1000000 movestogo 20"
	tokens = regexWhiteSpace.Split(cmd, -1)
	sl, malformed = uciHandler.readSearchLimits(tokens)
	assert.False(t, malformed)
	assert.EqualValues(t, 6, sl.Depth)

	cmd = "go depth"
	tokens = regexWhiteSpace.Split(cmd, -1)
	_, malformed = uciHandler.readSearchLimits(tokens)
	assert.True(t, malformed)

	cmd = "go bogus 1"
	tokens = regexWhiteSpace.Split(cmd, -1)
	_, malformed = uciHandler.readSearchLimits(tokens)
	assert.True(t, malformed)
}

func TestFullSearchProcess(t *testing.T) {
	config.Settings.Search.WorkerCount = 1
	uh := NewUciHandler()

	result := uh.Command("uci")
	assert.Contains(t, result, "id name gochess")
	assert.Contains(t, result, "uciok")

	result = uh.Command("isready")
	assert.Contains(t, result, "readyok")

	uh.Command("position startpos moves e2e4 e7e5")
	assert.EqualValues(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", uh.myPosition.StringFen())

	uh.Command("go depth 3")
	uh.mySearch.WaitWhileSearching()
	assert.False(t, uh.mySearch.IsSearching())
}

func TestStopCommand(t *testing.T) {
	config.Settings.Search.WorkerCount = 1
	uh := NewUciHandler()

	uh.Command("position startpos")
	uh.Command("go depth 6")
	time.Sleep(10 * time.Millisecond)
	uh.Command("stop")
	uh.mySearch.WaitWhileSearching()
	assert.False(t, uh.mySearch.IsSearching())
}
