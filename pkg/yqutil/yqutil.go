// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

// Package yqutil evaluates yq expressions over save files.
package yqutil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mikefarah/yq/v4/pkg/yqlib"
	"github.com/sirupsen/logrus"
	logging "gopkg.in/op/go-logging.v1"
)

// EvaluateFile decodes the XML file at path, evaluates the yq expression and
// returns the result encoded as outputFormat ("yaml", "xml", "json", ...).
func EvaluateFile(expression, path, outputFormat string) ([]byte, error) {
	format, err := yqlib.FormatFromString(outputFormat)
	if err != nil {
		return nil, err
	}

	memory := logging.NewMemoryBackend(0)
	backend := logging.AddModuleLevel(memory)
	logging.SetBackend(backend)
	yqlib.InitExpressionParser()

	out := new(bytes.Buffer)
	printer := yqlib.NewPrinter(format.EncoderFactory(), yqlib.NewSinglePrinterWriter(out))
	decoder := yqlib.XMLFormat.DecoderFactory()

	streamEvaluator := yqlib.NewStreamEvaluator()
	if err := streamEvaluator.EvaluateFiles(expression, []string{path}, printer, decoder); err != nil {
		propagateLogs(memory)
		return nil, fmt.Errorf("failed to evaluate %q: %w", expression, err)
	}
	return out.Bytes(), nil
}

func propagateLogs(memory *logging.MemoryBackend) {
	logger := logrus.StandardLogger()
	for node := memory.Head(); node != nil; node = node.Next() {
		entry := logrus.NewEntry(logger).WithTime(node.Record.Time)
		prefix := fmt.Sprintf("[%s] ", node.Record.Module)
		message := prefix + node.Record.Message()
		switch node.Record.Level {
		case logging.CRITICAL, logging.ERROR:
			entry.Error(message)
		case logging.WARNING:
			entry.Warn(message)
		case logging.NOTICE, logging.INFO:
			entry.Info(message)
		case logging.DEBUG:
			entry.Debug(message)
		}
	}
}

// Join joins the expressions so that they are evaluated in order.
func Join(yqExprs []string) string {
	if len(yqExprs) == 0 {
		return ""
	}
	return strings.Join(yqExprs, " | ")
}
