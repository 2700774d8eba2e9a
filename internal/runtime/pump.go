// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/invowk/mvninvoke/pkg/invocation"
)

// pumpBufferSize bounds a single read; longer lines are still delivered whole.
const pumpBufferSize = 64 * 1024

// pumpLines delivers every line of r to h, in order, without its line
// terminator. A final line lacking a terminator is delivered too. It returns
// nil at end of stream and the read error otherwise.
func pumpLines(r io.Reader, h invocation.OutputHandler) error {
	br := bufio.NewReaderSize(r, pumpBufferSize)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			h.ConsumeLine(strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
