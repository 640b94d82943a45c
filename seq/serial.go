// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package seq

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing buffer identifier.
// Every chain built by [NewLoader], [Open], [Start] or [FromSlice]
// gets the next serial; cursors cut from the same chain share it.
type Serial = uint32

// counter is the global monotonic counter for buffer serials.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}
