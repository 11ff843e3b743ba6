// Package relaysdk is a small Go client for the auth relay service. It
// covers what a frontend backend needs: redeeming a one-time auth result,
// refreshing tokens, and reading the authenticated user's profile. The
// response and error types here are also what the relay's own HTTP
// handlers serialize, so server and client agree by construction.
package relaysdk
