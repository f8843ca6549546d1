/*
DESCRIPTION
  fps.go provides a moving average of the host frame rate for the report.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package app

import "gonum.org/v1/gonum/stat"

// Number of samples averaged.
const fpsWindow = 30

// fpsMeter averages the most recent fpsWindow frame rate samples.
type fpsMeter struct {
	samples [fpsWindow]float64
	next    int
	n       int
}

// add records v and returns the mean of the recorded samples.
func (m *fpsMeter) add(v float64) float64 {
	m.samples[m.next] = v
	m.next = (m.next + 1) % fpsWindow
	if m.n < fpsWindow {
		m.n++
	}
	return stat.Mean(m.samples[:m.n], nil)
}
