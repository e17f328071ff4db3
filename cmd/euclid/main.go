//
// Euclid - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2024 The Euclid developers
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

// Euclid is a UCI chess engine. Without any options it starts the
// UCI protocol loop. Command line options run the auxiliary modes:
// perft, a one-shot search, a static evaluation, selfplay and
// dataset generation.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/euclidchess/euclid/internal/config"
	"github.com/euclidchess/euclid/internal/dataset"
	"github.com/euclidchess/euclid/internal/eval"
	"github.com/euclidchess/euclid/internal/logging"
	"github.com/euclidchess/euclid/internal/movegen"
	"github.com/euclidchess/euclid/internal/position"
	"github.com/euclidchess/euclid/internal/search"
	"github.com/euclidchess/euclid/internal/selfplay"
	"github.com/euclidchess/euclid/internal/uci"
	"github.com/euclidchess/euclid/internal/version"
)

var out = message.NewPrinter(language.English)

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(critical|error|warning|notice|info|debug)")
	fen := flag.String("fen", position.StartFen, "fen for perft, search, eval and selfplay")
	perftDepth := flag.Int("perft", 0, "runs perft on the given position up to the given depth")
	searchDepth := flag.Int("search", 0, "runs a one-shot search with the given depth limit")
	moveTime := flag.Int("movetime", 0, "time per move in milliseconds for search and selfplay")
	evalOnly := flag.Bool("eval", false, "prints the static evaluation of the given position")
	selfplayGames := flag.Int("selfplay", 0, "plays the given number of selfplay games")
	maxPlies := flag.Int("maxplies", 200, "ply cap per selfplay game")
	datasetPath := flag.String("dataset", "", "writes a selfplay dataset to the given path")
	games := flag.Int("games", 1, "number of games for dataset generation")
	workers := flag.Int("workers", 1, "number of concurrent games for dataset generation")
	depth := flag.Int("depth", 2, "search depth per move for selfplay and dataset generation")
	profileMode := flag.Bool("profile", false, "writes a cpu profile to the working directory")
	flag.Parse()

	if *versionInfo {
		fmt.Println("Euclid", version.Version)
		return
	}

	if *profileMode {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	// config file needs to be set before Setup() is called
	config.ConfFile = *configFile
	config.Setup()
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	log := logging.GetLog()

	switch {
	case *perftDepth > 0:
		pt := movegen.NewPerft()
		for d := 1; d <= *perftDepth; d++ {
			nodes := pt.StartPerft(*fen, d, false)
			out.Printf("perft %d: %d nodes\n", d, nodes)
		}

	case *searchDepth > 0 || (*moveTime > 0 && *selfplayGames == 0 && *datasetPath == ""):
		p, err := position.NewPositionFen(*fen)
		if err != nil {
			log.Errorf("invalid fen: %s", err)
			return
		}
		s := search.NewSearch()
		limits := search.NewSearchLimits()
		limits.Depth = *searchDepth
		limits.MoveTime = time.Duration(*moveTime) * time.Millisecond
		result := s.Search(p, *limits)
		out.Printf("best %s score %s depth %d nodes %d time %s pv %s\n",
			result.BestMove.StringUci(), result.BestValue.String(), result.Depth,
			result.Nodes, result.SearchTime, result.Pv.StringUci())

	case *evalOnly:
		p, err := position.NewPositionFen(*fen)
		if err != nil {
			log.Errorf("invalid fen: %s", err)
			return
		}
		e := eval.NewEvaluator()
		out.Printf("%s\nevaluation (white pov): %d cp\n", p.String(), e.Evaluate(p))

	case *selfplayGames > 0:
		p, err := position.NewPositionFen(*fen)
		if err != nil {
			log.Errorf("invalid fen: %s", err)
			return
		}
		sp := selfplay.NewSelfplay()
		limits := search.NewSearchLimits()
		limits.Depth = *depth
		limits.MoveTime = time.Duration(*moveTime) * time.Millisecond
		for g := 0; g < *selfplayGames; g++ {
			report := sp.Play(p, *maxPlies, *limits)
			out.Printf("game %d: %s in %d plies (%s) %d nodes in %s\n",
				g+1, report.Outcome, report.Plies, report.Reason, report.Nodes, report.Duration)
		}

	case *datasetPath != "":
		p, err := position.NewPositionFen(*fen)
		if err != nil {
			log.Errorf("invalid fen: %s", err)
			return
		}
		limits := search.NewSearchLimits()
		limits.Depth = *depth
		cfg := dataset.Config{
			Games:    *games,
			MaxPlies: *maxPlies,
			Workers:  *workers,
		}
		stats, err := dataset.WriteSelfplayDataset(*datasetPath, p, cfg, *limits)
		if err != nil {
			log.Errorf("dataset generation failed: %s", err)
			return
		}
		out.Printf("dataset %s: %d games %d records (+%d =%d -%d aborted %d)\n",
			*datasetPath, stats.Games, stats.Records,
			stats.WhiteWins, stats.Draws, stats.BlackWins, stats.Aborted)

	default:
		// starting the uci handler and waiting for communication
		// with the uci user interface
		u := uci.NewUciHandler()
		u.Loop()
	}
}
