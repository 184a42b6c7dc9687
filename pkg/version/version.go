// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

//nolint:revive // var-naming: avoid package names that conflict with Go standard library package names
package version

// Version is filled on compilation time, with -ldflags "-X github.com/rimsave/rimsave/pkg/version.Version=...".
var Version = "<unknown>"
