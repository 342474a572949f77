//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	DEFAULTCHRTWIDTH   = "1500px"
	DEFAULTCHRTHEIGHT  = "1200px"
	VECTORNEIGHBORS    = 16
	VECTORNEIGHBORSMAX = 40
	VECTORNEIGHBORSMIN = 4
	VECTORDIMENSIONS   = 125
	VECTORWINDOW       = 8
	VECTORITERATIONS   = 12
	VECTORMINCOUNT     = 5
	VECTORTHREADS      = 0 // 0 means "one per CPU"
	VECTORFILENN       = "ogs-w2v-%s.bin"
)
