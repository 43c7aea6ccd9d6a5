// Package core exposes the vulnsweep scanning engine as a small stable API
// for embedding in other programs.
package core
