// Package redis provides a Redis-backed run store using go-redis v9.
package redis
