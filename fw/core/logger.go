/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"fmt"
	"io"
	"os"

	"github.com/named-data/ndnfw/std/log"
)

var Log = log.Default()
var logFileObj *os.File

// OpenLogger initializes the logger from the given configuration.
func OpenLogger(c *Config) error {
	var out io.Writer = os.Stderr
	if c.Core.LogFile != "" {
		f, err := os.Create(c.ResolveRelPath(c.Core.LogFile))
		if err != nil {
			return fmt.Errorf("unable to open log file: %w", err)
		}
		logFileObj = f
		out = f
	}

	level, err := log.ParseLevel(c.Core.LogLevel)
	if err != nil {
		return err
	}

	if c.Core.LogFormat == "json" {
		Log = log.NewJson(out)
	} else {
		Log = log.NewText(out)
	}
	Log.SetLevel(level)
	return nil
}

// CloseLogger closes the log file, if any.
func CloseLogger() {
	if logFileObj != nil {
		logFileObj.Close()
		logFileObj = nil
	}
	Log = log.Default()
}
