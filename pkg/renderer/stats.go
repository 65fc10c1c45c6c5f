package renderer

import "time"

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	Rows        int           // Scanline tasks completed
	Workers     int           // Workers in the pool
	RenderTime  time.Duration // Wall time of the frame
	RaysCast    int64         // Primary and secondary rays
	ShadowRays  int64         // Shadow rays tested
}

// RaysPerSecond returns the camera and secondary ray throughput of the frame
func (s RenderStats) RaysPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.RaysCast) / s.RenderTime.Seconds()
}

// add folds one row's counters into the frame totals
func (s *RenderStats) add(row RowResult) {
	s.Rows++
	s.RaysCast += row.RaysCast
	s.ShadowRays += row.ShadowRays
}
