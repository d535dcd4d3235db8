/*
Package carver finds the lowest cost vertical seam of a two dimensional cost grid,
the core step of content aware image resizing and of seamless image stitching.

A seam is a top to bottom path holding one column per row, where the column of two
consecutive rows differs by at most one. The cost grid is usually the squared
difference between two overlapping image strips (see SquaredDiff) or any other
non-negative energy map computed by the caller.

The seam is computed in two passes over a cumulative cost table:

  - the accumulation pass adds to every cell the cheapest cumulative cost
    among its two or three neighbours on the row above;
  - the backtrace pass starts from the cheapest cell of the last row and climbs
    up, on every row picking the cheapest neighbour of the cell chosen below.

Ties are always resolved towards the leftmost column, so the result is reproducible.

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"

		"github.com/esimov/carver"
	)

	func main() {
		grid := carver.Grid{
			{1, 100, 100},
			{100, 1, 100},
			{100, 100, 1},
		}
		seam, err := carver.ComputeSeam(grid)
		if err != nil {
			fmt.Printf("Error computing the seam: %s", err.Error())
			return
		}
		fmt.Println(seam) // [0 1 2]
	}
*/
package carver
