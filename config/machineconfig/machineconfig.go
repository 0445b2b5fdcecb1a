/*
 * D17B/D37C - Configuration file parser
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

// Package machineconfig loads the small key/value configuration file
// that selects machine mode and overrides at startup.
package machineconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <key> <whitespace> <value>
 * <key>  := 'mode' | 'memory' | 'memlimit' | 'logfile' | 'debug'
 *
 * 'memory' and 'memlimit' are synonyms: SPEC_FULL.md §6.3's example
 * config uses 'memory', the rest of this package's naming favors
 * 'memlimit'.
 */

// Config holds the machine parameters read from a configuration file.
type Config struct {
	D37CMode bool
	MemLimit uint32 // 0 means "use the mode default"
	LogFile  string
	Debug    bool
}

var lineNumber int

// Load reads a configuration file, applying each recognized key to a
// zero-valued Config.
func Load(name string) (*Config, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &Config{}
	lineNumber = 0
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		lineNumber++
		if len(line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if parseErr := applyLine(cfg, line); parseErr != nil {
			return nil, parseErr
		}
		if err != nil && errors.Is(err, io.EOF) {
			break
		}
	}
	return cfg, nil
}

func applyLine(cfg *Config, line string) error {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	key := strings.ToLower(fields[0])
	if len(fields) < 2 {
		// A bare "debug" line (no value) enables debug logging, matching
		// the config example in SPEC_FULL.md §6.3.
		if key == "debug" {
			cfg.Debug = true
			return nil
		}
		return fmt.Errorf("missing value for %q, line %d", key, lineNumber)
	}
	value := fields[1]

	switch key {
	case "mode":
		switch strings.ToLower(value) {
		case "d17b":
			cfg.D37CMode = false
		case "d37c":
			cfg.D37CMode = true
		default:
			return fmt.Errorf("unknown mode %q, line %d", value, lineNumber)
		}
	case "memory", "memlimit":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid %s %q, line %d", key, value, lineNumber)
		}
		cfg.MemLimit = uint32(n)
	case "logfile":
		cfg.LogFile = value
	case "debug":
		switch strings.ToLower(value) {
		case "on", "true", "yes":
			cfg.Debug = true
		case "off", "false", "no":
			cfg.Debug = false
		default:
			return fmt.Errorf("invalid debug value %q, line %d", value, lineNumber)
		}
	default:
		return fmt.Errorf("unknown option %q, line %d", key, lineNumber)
	}
	return nil
}
