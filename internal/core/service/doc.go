// Package service provides the domain services for UserHub.
//
// Services own the business rules and talk to storage through narrow
// repository interfaces; HTTP concerns stay in the server layer.
package service
