// Package clients provides clients for the read side of the deployment backend
// API. Notifying the backend is done by api/postsetup.
package clients
