// SPDX-License-Identifier: MIT

// Package build holds release metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/katalvlaran/flowacc/internal/build.Version=v1.2.0"
package build

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the source revision.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
