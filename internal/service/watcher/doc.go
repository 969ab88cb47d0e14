// Package watcher polls the security panel and logs every observed state change.
package watcher
