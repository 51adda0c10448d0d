// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package asyncq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip stress tests whose assertions on approximate
// counts (Count, AwaiterCount) are intentionally racy and would otherwise
// trigger detector false positives.
const RaceEnabled = true
