// Package pool provides the bounded worker dispatcher used for data-parallel
// matching: a batch of independent units is fanned out across at most
// Workers goroutines and joined before Run returns.
package pool
