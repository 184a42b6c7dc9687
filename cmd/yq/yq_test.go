// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package yq

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestWithXMLInput(t *testing.T) {
	testCases := []struct {
		args     []string
		expected []string
	}{
		{[]string{"eval", ".savegame.meta", "a.rws"}, []string{"eval", ".savegame.meta", "a.rws", "--input-format=xml"}},
		{[]string{"eval", "-p", "yaml", "."}, []string{"eval", "-p", "yaml", "."}},
		{[]string{"-p=json", "."}, []string{"-p=json", "."}},
		{[]string{"--input-format", "yaml", "."}, []string{"--input-format", "yaml", "."}},
		{[]string{"-Pp", "yaml", "."}, []string{"-Pp", "yaml", "."}},
		{[]string{"eval", "-o=props", "."}, []string{"eval", "-o=props", ".", "--input-format=xml"}},
		{[]string{"eval", "-oprops", "."}, []string{"eval", "-oprops", ".", "--input-format=xml"}},
		{[]string{"eval", "-Mo=props", "."}, []string{"eval", "-Mo=props", ".", "--input-format=xml"}},
		{[]string{"eval", ".", "--", "-p"}, []string{"eval", ".", "--input-format=xml", "--", "-p"}},
	}
	for _, tc := range testCases {
		assert.DeepEqual(t, WithXMLInput(tc.args), tc.expected)
	}
}
