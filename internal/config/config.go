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

// Package config holds globally available configuration variables
// which are either set by defaults, read from a config file or set
// by command line options.
package config

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
)

// globally available config values.
var (
	// ConfFile holds the path to the used config file (relative to working directory)
	ConfFile = "./config.toml"

	// LogLevel defines the general log level - can be overwritten by cmd line options or config file
	LogLevel = 4 // INFO

	// SearchLogLevel defines the search log level - can be overwritten by cmd line options or config file
	SearchLogLevel = 4 // INFO

	// TestLogLevel defines the test log level
	TestLogLevel = 5 // DEBUG

	// Settings is the global configuration read in from file
	Settings conf

	initialized = false
)

// LogLevels maps log level names to the go-logging level values
var LogLevels = map[string]int{
	"critical": 0,
	"error":    1,
	"warning":  2,
	"notice":   3,
	"info":     4,
	"debug":    5,
}

type conf struct {
	Log    logConfiguration
	Search searchConfiguration
	Eval   evalConfiguration
}

type logConfiguration struct {
	LogLvl       string
	SearchLogLvl string
	LogPath      string
}

// searchConfiguration holds all configuration for the search
// selectivity. The defaults represent the intended engine behavior,
// the toggles exist to isolate features while testing.
type searchConfiguration struct {
	// size of the transposition table in MB
	TTSize int

	// feature toggles
	UseTT         bool
	UseTTMove     bool
	UseTTValue    bool
	UseQuiescence bool
	UseQSStandpat bool
	UseAspiration bool
	UseNullMove   bool
	UseIID        bool
	UsePVS        bool
	UseLmr        bool
	UseFutility   bool
	UseCheckExt   bool
	UseKiller     bool
	UseHistory    bool
	UseEvalCache  bool
	UseMDP        bool
}

type evalConfiguration struct {
	// path to a neural model file to be used as evaluation backend.
	// Empty keeps the default material evaluator.
	ModelPath string

	// use the neural backend if a model is configured and loads
	UseModel bool
}

// Setup reads the configuration file and sets settings from this file
// or defaults. Can be called several times - it only runs once.
func Setup() {
	if initialized {
		return
	}
	setDefaults()
	if _, err := toml.DecodeFile(ConfFile, &Settings); err != nil {
		log.Println("Config file not found. Using defaults. (", err, ")")
	}
	setupLogLvl()
	initialized = true
}

// setDefaults defines the default configuration representing the
// intended engine behavior.
func setDefaults() {
	Settings.Log.LogLvl = ""
	Settings.Log.SearchLogLvl = ""
	Settings.Log.LogPath = "./logs"

	Settings.Search.TTSize = 64
	Settings.Search.UseTT = true
	Settings.Search.UseTTMove = true
	Settings.Search.UseTTValue = true
	Settings.Search.UseQuiescence = true
	Settings.Search.UseQSStandpat = true
	Settings.Search.UseAspiration = true
	Settings.Search.UseNullMove = true
	Settings.Search.UseIID = true
	Settings.Search.UsePVS = true
	Settings.Search.UseLmr = true
	Settings.Search.UseFutility = true
	Settings.Search.UseCheckExt = true
	Settings.Search.UseKiller = true
	Settings.Search.UseHistory = true
	Settings.Search.UseEvalCache = true
	Settings.Search.UseMDP = true

	Settings.Eval.ModelPath = ""
	Settings.Eval.UseModel = true
}

// setupLogLvl transfers the log level names from the config file to
// the global log level values if they have been set.
func setupLogLvl() {
	if lvl, found := LogLevels[strings.ToLower(Settings.Log.LogLvl)]; found {
		LogLevel = lvl
	}
	if lvl, found := LogLevels[strings.ToLower(Settings.Log.SearchLogLvl)]; found {
		SearchLogLevel = lvl
	}
}

// String prints out the current configuration settings and values.
// This uses reflection to read variables and their values.
func (settings *conf) String() string {
	var c strings.Builder
	c.WriteString("Search Config:\n")
	s := reflect.ValueOf(&settings.Search).Elem()
	typeOfT := s.Type()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		c.WriteString(fmt.Sprintf("%-2d: %-22s %-6s = %v\n", i, typeOfT.Field(i).Name, f.Type(), f.Interface()))
	}
	c.WriteString("\nEvaluation Config:\n")
	s = reflect.ValueOf(&settings.Eval).Elem()
	typeOfT = s.Type()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		c.WriteString(fmt.Sprintf("%-2d: %-22s %-6s = %v\n", i, typeOfT.Field(i).Name, f.Type(), f.Interface()))
	}
	return c.String()
}
