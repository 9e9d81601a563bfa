// Package service exposes split and merge as request/response operations.
//
// It is the boundary between callers (the command line, or any transport
// layered on top) and the pure core: it reads input files, calls the
// planner and executors, and for merges writes the result under a file lock
// with an optional timestamped backup. Split never writes; callers decide
// what to do with the returned files.
package service
