// Package monitor renders diagnostic output for turbulent grids: a
// log-log power spectrum plot (PNG, gonum/plot) and an interactive slice
// view of the field magnitude (HTML, go-echarts).
package monitor
