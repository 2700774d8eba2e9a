// SPDX-License-Identifier: MPL-2.0

// Package invocation defines the data model shared by every stage of a Maven
// invocation: the Request describing the desired build, the Result
// describing what happened, the OutputHandler line consumers, and the error
// taxonomy separating configuration problems (returned before anything is
// launched) from execution problems (recorded in the Result).
//
// A Request is built once, usually through NewRequest, and is treated as
// read-only by the command-line compiler and the executor.
package invocation
