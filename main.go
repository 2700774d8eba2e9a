// SPDX-License-Identifier: MPL-2.0

// Command mvninvoke runs Maven builds from typed requests.
package main

import "github.com/invowk/mvninvoke/cmd/mvninvoke"

func main() {
	cmd.Execute()
}
