// Copyright 2017 The go-ethereum Authors, adapted.

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import "strconv"

// appendInt64 and appendUint64 append the decimal form of v to buf,
// avoiding an intermediate string allocation in the hot logging path.
// The original's variants additionally comma-group large numbers for
// terminal readability and special-case *big.Int/*uint256.Int — this
// module never logs values of those types, so that formatting is
// dropped rather than carried unused (SPEC_FULL.md's ambient-stack
// section).
func appendInt64(buf []byte, n int64) []byte {
	return strconv.AppendInt(buf, n, 10)
}

func appendUint64(buf []byte, n uint64, _ bool) []byte {
	return strconv.AppendUint(buf, n, 10)
}
