// Package server runs the security panel gRPC server around a single controller.
package server
