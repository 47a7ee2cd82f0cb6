package main

import (
	"strconv"
	"strings"
)

// parsePathArg splits "path[:line[:col]]". Trailing components that are not
// positive integers stay part of the path.
func parsePathArg(arg string) (path string, line, col int) {
	path = arg
	var nums []int
	for len(nums) < 2 {
		i := strings.LastIndexByte(path, ':')
		if i <= 0 {
			break
		}
		n, err := strconv.Atoi(path[i+1:])
		if err != nil || n < 1 {
			break
		}
		nums = append(nums, n)
		path = path[:i]
	}

	switch len(nums) {
	case 1:
		line = nums[0]
	case 2:
		line, col = nums[1], nums[0]
	}
	return path, line, col
}
